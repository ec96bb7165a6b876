package runner_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/devantler-tech/s3edit/pkg/utils/runner"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_CommandExists(t *testing.T) {
	t.Parallel()

	execRunner := runner.NewExecRunner(nil, nil, nil)

	require.True(t, execRunner.CommandExists("sh"))
	require.False(t, execRunner.CommandExists("3f0c2a9e-8d41-4b7a-9e11-5c2d7b6a4f90"))
	require.False(t, execRunner.CommandExists(""))
}

func TestExecRunner_RunCaptured(t *testing.T) {
	t.Parallel()

	execRunner := runner.NewExecRunner(nil, nil, nil)

	result, err := execRunner.RunCaptured(context.Background(), "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
	require.Equal(t, "out\n", result.Stdout)
	require.Equal(t, "err\n", result.Stderr)
}

func TestExecRunner_RunCapturedNonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()

	execRunner := runner.NewExecRunner(nil, nil, nil)

	result, err := execRunner.RunCaptured(context.Background(), "sh", "-c", "echo changed; exit 1")
	require.NoError(t, err)
	require.Equal(t, 1, result.ExitCode)
	require.Equal(t, "changed\n", result.Stdout)
}

func TestExecRunner_RunCapturedMissingCommand(t *testing.T) {
	t.Parallel()

	execRunner := runner.NewExecRunner(nil, nil, nil)

	_, err := execRunner.RunCaptured(context.Background(), "3f0c2a9e-8d41-4b7a-9e11-5c2d7b6a4f90")
	require.Error(t, err)

	_, err = execRunner.RunCaptured(context.Background(), "")
	require.ErrorIs(t, err, runner.ErrEmptyCommand)
}

func TestExecRunner_RunInteractive(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer

	execRunner := runner.NewExecRunner(strings.NewReader("typed\n"), &stdout, &bytes.Buffer{})

	exitCode, err := execRunner.RunInteractive(context.Background(), "sh", "-c", "read line; echo got $line; exit 3")
	require.NoError(t, err)
	require.Equal(t, 3, exitCode)
	require.Equal(t, "got typed\n", stdout.String())
}

func TestExecRunner_RunInteractiveMissingCommand(t *testing.T) {
	t.Parallel()

	execRunner := runner.NewExecRunner(nil, &bytes.Buffer{}, &bytes.Buffer{})

	exitCode, err := execRunner.RunInteractive(context.Background(), "3f0c2a9e-8d41-4b7a-9e11-5c2d7b6a4f90")
	require.Error(t, err)
	require.Equal(t, -1, exitCode)
}
