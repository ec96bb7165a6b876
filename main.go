// Package main is the entry point for the s3edit application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/devantler-tech/s3edit/internal/buildmeta"
	"github.com/devantler-tech/s3edit/pkg/cli/cmd"
	"github.com/devantler-tech/s3edit/pkg/cli/ui/confirm"
	"github.com/devantler-tech/s3edit/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/s3edit/pkg/utils/notify"
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			panicMessage := fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack())
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: panicMessage,
				Writer:  errWriter,
			})

			exitCode = errorhandler.ExitFailure
		}
	}()

	exitCode = runner(args)

	return exitCode
}

func runWithArgs(args []string) int {
	ctx, stop := newSignalContext()
	defer stop()

	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	err := cmd.Execute(ctx, rootCmd)

	return report(rootCmd.ErrOrStderr(), err)
}

// newSignalContext cancels on SIGTERM only. SIGINT belongs to whatever holds the terminal:
// prompts turn it into a cancellation, editors receive it themselves.
func newSignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM)
}

func report(errWriter io.Writer, err error) int {
	switch {
	case err == nil:
		return errorhandler.ExitOK
	case errors.Is(err, confirm.ErrCancelled):
		notify.Errorf(errWriter, "cancelled by user")
	default:
		notify.Errorf(errWriter, "%v", err)
	}

	return errorhandler.ExitCode(err)
}
