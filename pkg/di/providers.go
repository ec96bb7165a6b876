package di

import (
	"io"
	"os"

	"github.com/devantler-tech/s3edit/pkg/apis/edit/v1alpha1"
	"github.com/devantler-tech/s3edit/pkg/cli/ui/confirm"
	"github.com/devantler-tech/s3edit/pkg/svc/objectstore"
	"github.com/devantler-tech/s3edit/pkg/svc/session"
	"github.com/devantler-tech/s3edit/pkg/utils/logging"
	"github.com/devantler-tech/s3edit/pkg/utils/runner"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// PrompterFactory builds the prompter asking questions on out.
type PrompterFactory func(out io.Writer) session.Prompter

// Dependency providers.

// NewRuntime constructs the shared runtime container used by root command and tests.
// It registers default implementations for the store factory, process runner, prompter and logger.
func NewRuntime() *Runtime {
	return New(
		provideStoreFactory,
		provideRunner,
		providePrompterFactory,
		provideLogger,
	)
}

// provideStoreFactory registers the object store factory dependency.
func provideStoreFactory(i Injector) error {
	do.Provide(i, func(Injector) (objectstore.Factory, error) {
		return objectstore.DefaultFactory{}, nil
	})

	return nil
}

// provideRunner registers a runner attached to the process's terminal.
func provideRunner(i Injector) error {
	do.Provide(i, func(Injector) (runner.Runner, error) {
		return runner.NewExecRunner(os.Stdin, os.Stdout, os.Stderr), nil
	})

	return nil
}

// providePrompterFactory registers the stdin-backed prompter.
func providePrompterFactory(i Injector) error {
	do.Provide(i, func(Injector) (PrompterFactory, error) {
		return func(out io.Writer) session.Prompter {
			return confirm.NewPrompter(out)
		}, nil
	})

	return nil
}

// provideLogger registers a stderr logger at the default level; commands raise it from config.
func provideLogger(i Injector) error {
	do.Provide(i, func(Injector) (*logrus.Logger, error) {
		return logging.New(v1alpha1.DefaultLogLevel, os.Stderr)
	})

	return nil
}
