// Package runner runs external programs on behalf of the edit session.
//
// Two modes are provided: captured runs collect stdout and stderr for programmatic use
// (diff tools), interactive runs hand the terminal to the child (editors).
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"
)

// waitDelay bounds how long a cancelled child may keep its output pipes open.
const waitDelay = 5 * time.Second

// ErrEmptyCommand is returned when no command name is given.
var ErrEmptyCommand = errors.New("empty command")

// Result captures the outcome of a captured run. A non-zero ExitCode is not an error.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner spawns external programs.
type Runner interface {
	// CommandExists reports whether name resolves on the host's search path.
	CommandExists(name string) bool
	// RunCaptured runs the command to completion and captures both output streams.
	RunCaptured(ctx context.Context, name string, args ...string) (Result, error)
	// RunInteractive runs the command attached to the terminal and returns its exit code.
	RunInteractive(ctx context.Context, name string, args ...string) (int, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner creates a runner whose interactive children inherit the given streams.
// Nil streams default to os.Stdin, os.Stdout and os.Stderr.
func NewExecRunner(stdin io.Reader, stdout, stderr io.Writer) *ExecRunner {
	if stdin == nil {
		stdin = os.Stdin
	}

	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &ExecRunner{stdin: stdin, stdout: stdout, stderr: stderr}
}

// CommandExists never fails: any lookup error collapses to false.
func (*ExecRunner) CommandExists(name string) bool {
	if name == "" {
		return false
	}

	_, err := exec.LookPath(name)

	return err == nil
}

// RunCaptured runs name with args and returns its exit code and output.
// Only spawn and I/O failures are returned as errors.
func (*ExecRunner) RunCaptured(ctx context.Context, name string, args ...string) (Result, error) {
	if name == "" {
		return Result{}, ErrEmptyCommand
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	exitCode, err := exitCodeOf(err)
	if err != nil {
		return result, fmt.Errorf("run %s: %w", name, err)
	}

	result.ExitCode = exitCode

	return result, nil
}

// RunInteractive attaches the child to the runner's streams. While the child runs, SIGINT
// is caught by this process so Ctrl-C is only acted on by the child. Cancelling ctx asks the
// child to stop with SIGTERM and is reported as an error.
func (r *ExecRunner) RunInteractive(ctx context.Context, name string, args ...string) (int, error) {
	if name == "" {
		return -1, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Cancel = func() error { return terminate(cmd.Process) }
	cmd.WaitDelay = waitDelay

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	defer signal.Stop(interrupts)

	exitCode, err := exitCodeOf(cmd.Run())

	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("run %s: %w", name, ctxErr)
	}

	if err != nil {
		return -1, fmt.Errorf("run %s: %w", name, err)
	}

	return exitCode, nil
}

// terminate prefers SIGTERM so editors can restore the terminal; platforms without it get a kill.
func terminate(process *os.Process) error {
	err := process.Signal(syscall.SIGTERM)
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return process.Kill()
	}

	return err
}

// exitCodeOf separates a non-zero exit, which is a result, from a real failure.
func exitCodeOf(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, err
}
