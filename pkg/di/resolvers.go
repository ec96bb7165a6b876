package di

import (
	"fmt"

	"github.com/devantler-tech/s3edit/pkg/svc/objectstore"
	"github.com/devantler-tech/s3edit/pkg/utils/runner"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Dependencies bundles everything an edit session needs from the container.
type Dependencies struct {
	StoreFactory    objectstore.Factory
	Runner          runner.Runner
	PrompterFactory PrompterFactory
	Logger          *logrus.Logger
}

// Dependency resolvers.

// ResolveStoreFactory retrieves the object store factory dependency.
func ResolveStoreFactory(injector Injector) (objectstore.Factory, error) {
	factory, err := do.Invoke[objectstore.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve store factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveRunner retrieves the process runner dependency.
func ResolveRunner(injector Injector) (runner.Runner, error) {
	cmdRunner, err := do.Invoke[runner.Runner](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve runner dependency: %w", err)
	}

	return cmdRunner, nil
}

// ResolvePrompterFactory retrieves the prompter factory dependency.
func ResolvePrompterFactory(injector Injector) (PrompterFactory, error) {
	factory, err := do.Invoke[PrompterFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve prompter dependency: %w", err)
	}

	return factory, nil
}

// ResolveLogger retrieves the logger dependency.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	logger, err := do.Invoke[*logrus.Logger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveDependencies resolves every session dependency, stopping at the first failure.
func ResolveDependencies(injector Injector) (Dependencies, error) {
	var (
		deps Dependencies
		err  error
	)

	deps.StoreFactory, err = ResolveStoreFactory(injector)
	if err != nil {
		return Dependencies{}, err
	}

	deps.Runner, err = ResolveRunner(injector)
	if err != nil {
		return Dependencies{}, err
	}

	deps.PrompterFactory, err = ResolvePrompterFactory(injector)
	if err != nil {
		return Dependencies{}, err
	}

	deps.Logger, err = ResolveLogger(injector)
	if err != nil {
		return Dependencies{}, err
	}

	return deps, nil
}

// Handler decorators.

// WithDependencies decorates a handler to automatically resolve the session dependencies.
func WithDependencies(
	handler func(cmd *cobra.Command, deps Dependencies) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		deps, err := ResolveDependencies(injector)
		if err != nil {
			return err
		}

		return handler(cmd, deps)
	}
}
