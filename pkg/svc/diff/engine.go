package diff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/s3edit/pkg/apis/edit/v1alpha1"
	"github.com/devantler-tech/s3edit/pkg/utils/runner"
)

// ErrDiffFailed is returned when the diff program exits with a trouble status.
var ErrDiffFailed = errors.New("diff failed")

// Both git diff --no-index and diff exit 0 for equal files, 1 for differences and
// higher for trouble.
const troubleExitCode = 2

// Result is one rendered comparison.
type Result struct {
	// Output is the program's stdout, possibly with ANSI colour.
	Output string
	// Changed reports whether any non-whitespace difference was shown.
	Changed bool
}

// Engine renders diffs with the resolved program.
type Engine struct {
	runner    runner.Runner
	requested v1alpha1.DiffTool
	tool      v1alpha1.DiffTool
	color     bool
}

// NewEngine resolves preferred against the programs installed on the host.
// Auto tries git, then diff. An explicit program that is missing resolves to none;
// Missing reports it.
func NewEngine(cmdRunner runner.Runner, preferred v1alpha1.DiffTool, color bool) *Engine {
	if preferred == "" {
		preferred = v1alpha1.DefaultDiffTool
	}

	engine := &Engine{
		runner:    cmdRunner,
		requested: preferred,
		tool:      v1alpha1.DiffToolNone,
		color:     color,
	}

	switch preferred {
	case v1alpha1.DiffToolAuto:
		for _, candidate := range []v1alpha1.DiffTool{v1alpha1.DiffToolGit, v1alpha1.DiffToolDiff} {
			if cmdRunner.CommandExists(string(candidate)) {
				engine.tool = candidate

				break
			}
		}
	case v1alpha1.DiffToolGit, v1alpha1.DiffToolDiff:
		if cmdRunner.CommandExists(string(preferred)) {
			engine.tool = preferred
		}
	case v1alpha1.DiffToolNone:
	}

	return engine
}

// Tool returns the program diffs are rendered with, DiffToolNone when skipped.
func (e *Engine) Tool() v1alpha1.DiffTool {
	return e.tool
}

// Available reports whether a diff step should run.
func (e *Engine) Available() bool {
	return e.tool != v1alpha1.DiffToolNone
}

// Missing reports whether an explicitly requested program was not found.
func (e *Engine) Missing() bool {
	return e.requested != v1alpha1.DiffToolAuto &&
		e.requested != v1alpha1.DiffToolNone &&
		e.tool == v1alpha1.DiffToolNone
}

// Requested returns the configured diff tool.
func (e *Engine) Requested() v1alpha1.DiffTool {
	return e.requested
}

// Command returns the program and arguments comparing original with edited.
func (e *Engine) Command(original, edited string) (string, []string) {
	switch e.tool {
	case v1alpha1.DiffToolGit:
		colorMode := "--color=never"
		if e.color {
			colorMode = "--color=always"
		}

		return "git", []string{"diff", "--no-index", "--ignore-space-change", colorMode, "--", original, edited}
	case v1alpha1.DiffToolDiff:
		return "diff", []string{"-u", "-b", original, edited}
	case v1alpha1.DiffToolAuto, v1alpha1.DiffToolNone:
	}

	return "", nil
}

// Compute runs the program. Exit status 1 means "files differ" and is not an error.
func (e *Engine) Compute(ctx context.Context, original, edited string) (Result, error) {
	name, args := e.Command(original, edited)
	if name == "" {
		return Result{}, nil
	}

	res, err := e.runner.RunCaptured(ctx, name, args...)
	if err != nil {
		return Result{}, fmt.Errorf("run %s: %w", name, err)
	}

	if res.ExitCode >= troubleExitCode {
		return Result{}, fmt.Errorf("%w: %s exited %d: %s",
			ErrDiffFailed, name, res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	return Result{
		Output:  res.Stdout,
		Changed: strings.TrimSpace(res.Stdout) != "",
	}, nil
}
