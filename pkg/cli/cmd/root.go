package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/devantler-tech/s3edit/pkg/apis/edit/v1alpha1"
	"github.com/devantler-tech/s3edit/pkg/cli/helpers/editor"
	"github.com/devantler-tech/s3edit/pkg/cli/ui"
	"github.com/devantler-tech/s3edit/pkg/cli/ui/errorhandler"
	runtime "github.com/devantler-tech/s3edit/pkg/di"
	configmanager "github.com/devantler-tech/s3edit/pkg/io/config-manager"
	"github.com/devantler-tech/s3edit/pkg/io/validator/content"
	"github.com/devantler-tech/s3edit/pkg/svc/diff"
	"github.com/devantler-tech/s3edit/pkg/svc/objectstore"
	"github.com/devantler-tech/s3edit/pkg/svc/session"
	"github.com/devantler-tech/s3edit/pkg/utils/logging"
	"github.com/devantler-tech/s3edit/pkg/utils/notify"
	fcolor "github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const rootLong = `Edit a single object in S3 (s3://) or Google Cloud Storage (gs://) with a local editor.

The object is downloaded to a temporary file and opened in your editor. When you are done,
s3edit shows what changed and asks for confirmation before uploading the edited content back
to the same location. Nothing remote changes unless you confirm.`

const rootExample = `  # Edit with $VISUAL, $EDITOR or vi
  s3edit -u s3://mybucket/config.json

  # Edit with VS Code against a local MinIO
  s3edit -u s3://mybucket/notes.txt -e "code --wait" --endpoint-url http://localhost:9000 --path-style

  # Edit a gzip-compressed object as plain text
  s3edit -u gs://mybucket/logs/app.log.gz --nested-keys --gunzip`

// NewRootCmd creates and returns the root command with version info.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(runtime.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command resolving its collaborators from runtimeContainer.
func NewRootCmdWithRuntime(runtimeContainer *runtime.Runtime, version, commit, date string) *cobra.Command {
	var (
		editorFlag string
		configFile string
		diffTool   = v1alpha1.DefaultDiffTool
	)

	cmd := &cobra.Command{
		Use:          "s3edit --s3-url URL",
		Short:        "Edit a remote object with your local editor",
		Long:         rootLong,
		Example:      rootExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	flags := cmd.Flags()
	flags.SetNormalizeFunc(normalizeFlagAliases)
	flags.StringP("s3-url", "u", "", "object to edit, s3://bucket/key or gs://bucket/key (alias --url)")
	flags.StringVarP(&editorFlag, "editor", "e", "", "editor command (default $VISUAL, $EDITOR or vi)")
	flags.StringP("region", "r", "", "store region (default from the SDK environment)")
	flags.String("endpoint-url", "", "custom endpoint for S3-compatible stores")
	flags.Bool("path-style", false, "use path-style bucket addressing")
	flags.String("profile", "", "shared config profile")
	flags.Bool("nested-keys", false, "allow \"/\" in object keys")
	flags.Bool("gunzip", false, "edit .gz objects decompressed")
	flags.Bool("validate", v1alpha1.DefaultValidate, "check .json/.yaml/.yml content parses before the diff")
	flags.Var(&diffTool, "diff-tool", "how to show changes: auto, git, diff or none")
	flags.Bool("keep-temp", false, "keep temporary files after the session")
	flags.StringVar(&configFile, "config", "", "config file (default ./.s3edit.yaml, then user config)")
	flags.String("log-level", v1alpha1.DefaultLogLevel, "diagnostic log level on stderr")

	cmd.RunE = runtime.RunEWithRuntime(runtimeContainer, runtime.WithDependencies(
		func(cmd *cobra.Command, deps runtime.Dependencies) error {
			return runEdit(cmd, deps, editorFlag, configFile)
		},
	))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

func normalizeFlagAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "url" {
		name = "s3-url"
	}

	return pflag.NormalizedName(name)
}

func runEdit(cmd *cobra.Command, deps runtime.Dependencies, editorFlag, configFile string) error {
	manager := configmanager.NewConfigManager(configFile)

	err := manager.BindFlags(cmd.Flags())
	if err != nil {
		return err
	}

	opts, err := manager.Load()
	if err != nil {
		return err
	}

	err = opts.Validate()
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	err = logging.SetLevel(deps.Logger, opts.LogLevel)
	if err != nil {
		return err
	}

	if used := manager.ConfigFileUsed(); used != "" {
		deps.Logger.WithField("path", used).Debug("config file loaded")
	}

	loc, err := objectstore.ParseWithOptions(opts.URL, objectstore.ParseOptions{AllowNestedKeys: opts.NestedKeys})
	if err != nil {
		return err
	}

	editorName, editorArgs := editor.Split(editor.NewResolver(editorFlag, opts).Resolve())

	store, err := deps.StoreFactory.Create(cmd.Context(), loc.Scheme, storeOptions(opts, deps.Logger))
	if err != nil {
		return fmt.Errorf("create %s store: %w", loc.Scheme, err)
	}

	defer closeStore(store, deps.Logger)

	out := cmd.OutOrStdout()

	if ui.IsTerminal(out) {
		ui.SetTerminalTitle(out, "s3edit "+loc.String())
	}

	notify.Titlef(out, "📝", "Edit %s...", loc)

	var validator content.Validator
	if opts.ValidateContent {
		validator = content.ForKey(validationKey(loc.Key, opts.Gunzip))
	}

	sess := session.New(session.Config{
		Store:      store,
		Location:   loc,
		Editor:     editorName,
		EditorArgs: editorArgs,
		Runner:     deps.Runner,
		Prompter:   deps.PrompterFactory(out),
		Diff:       diff.NewEngine(deps.Runner, opts.DiffTool, ui.IsTerminal(out) && !fcolor.NoColor),
		Validator:  validator,
		KeepTemp:   opts.KeepTemp,
		Out:        out,
		Logger:     deps.Logger,
	})

	return sess.Run(cmd.Context())
}

func storeOptions(opts *v1alpha1.Options, logger *logrus.Logger) objectstore.Options {
	return objectstore.Options{
		Region:          opts.Region,
		Profile:         opts.Profile,
		EndpointURL:     opts.EndpointURL,
		PathStyle:       opts.PathStyle,
		AccessKeyID:     opts.AccessKeyID,
		SecretAccessKey: opts.SecretAccessKey,
		Gunzip:          opts.Gunzip,
		Logger:          logging.NewSmithyLogger(logger),
		Debug:           logger.IsLevelEnabled(logrus.DebugLevel),
	}
}

// validationKey is the key whose extension describes the edited content.
func validationKey(key string, gunzip bool) string {
	if gunzip {
		return strings.TrimSuffix(key, ".gz")
	}

	return key
}

func closeStore(store objectstore.Store, logger logrus.FieldLogger) {
	closer, ok := store.(io.Closer)
	if !ok {
		return
	}

	err := closer.Close()
	if err != nil {
		logger.WithError(err).Warn("failed to close object store client")
	}
}
