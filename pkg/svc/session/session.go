package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/s3edit/pkg/apis/edit/v1alpha1"
	"github.com/devantler-tech/s3edit/pkg/io/validator/content"
	"github.com/devantler-tech/s3edit/pkg/svc/diff"
	"github.com/devantler-tech/s3edit/pkg/svc/objectstore"
	"github.com/devantler-tech/s3edit/pkg/utils/notify"
	"github.com/devantler-tech/s3edit/pkg/utils/runner"
	"github.com/sirupsen/logrus"
)

// Questions asked during a session.
const (
	QuestionFinishedEditing = "Do you finish editing?"
	QuestionEditAgain       = "Edit again?"
	QuestionCommit          = "Confirm your edits and commit?"
)

const workingCopyMarker = ".edited"

// Prompter asks a yes/no question. confirm.Prompter satisfies it.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Config wires a session to its collaborators.
type Config struct {
	Store    objectstore.Store
	Location objectstore.Location
	// Editor is the editor program; EditorArgs precede the working copy path.
	Editor     string
	EditorArgs []string
	Runner     runner.Runner
	Prompter   Prompter
	// Diff renders changes before the commit prompt. Nil resolves the auto tool without colour.
	Diff *diff.Engine
	// Validator checks the working copy before the diff. Nil disables validation.
	Validator content.Validator
	// KeepTemp leaves both temporary files in place.
	KeepTemp bool
	// Out receives progress messages and the diff; os.Stdout when nil.
	Out    io.Writer
	Logger logrus.FieldLogger
}

// Stats counts what a session did.
type Stats struct {
	EditorRuns int
	Diffs      int
	Uploads    int
	// Downloaded and Uploaded are local byte sizes.
	Downloaded int64
	Uploaded   int64
}

// Session edits one remote object. It is not safe for concurrent use.
type Session struct {
	cfg          Config
	out          io.Writer
	logger       logrus.FieldLogger
	diff         *diff.Engine
	state        State
	failedIn     State
	originalPath string
	workingPath  string
	stats        Stats
}

// New creates a session in StateInit.
func New(cfg Config) *Session {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	logger := cfg.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	engine := cfg.Diff
	if engine == nil {
		engine = diff.NewEngine(cfg.Runner, v1alpha1.DiffToolAuto, false)
	}

	return &Session{
		cfg:      cfg,
		out:      out,
		logger:   logger.WithField("object", cfg.Location.String()),
		diff:     engine,
		state:    StateInit,
		failedIn: StateInit,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// FailedIn returns the state whose step failed, meaningful once State is StateError.
func (s *Session) FailedIn() State { return s.failedIn }

// Stats returns the session counters.
func (s *Session) Stats() Stats { return s.stats }

// OriginalPath returns the downloaded file, "" before download.
func (s *Session) OriginalPath() string { return s.originalPath }

// WorkingPath returns the working copy, "" before it is made.
func (s *Session) WorkingPath() string { return s.workingPath }

// Run steps the session until Done or the first error, then cleans up temporary files.
// Confirm cancellation is returned unchanged so callers can match confirm.ErrCancelled.
func (s *Session) Run(ctx context.Context) error {
	if s.state != StateInit {
		return fmt.Errorf("%w: %s", ErrSessionFinished, s.state)
	}

	err := s.loop(ctx)
	s.cleanup(err)

	return err
}

func (s *Session) loop(ctx context.Context) error {
	for !s.state.Terminal() {
		next, err := s.Step(ctx)
		if err != nil {
			s.logger.WithField("state", s.state).WithError(err).Debug("step failed")
			s.failedIn = s.state
			s.state = StateError

			return err
		}

		s.logger.WithFields(logrus.Fields{"from": s.state, "to": next}).Debug("transition")
		s.state = next
	}

	return nil
}

// Step runs the work of the current state and returns the state that follows.
// It does not advance the session; Run does.
func (s *Session) Step(ctx context.Context) (State, error) {
	switch s.state {
	case StateInit:
		return s.stepInit(ctx)
	case StateDownloaded:
		return s.stepDownloaded(ctx)
	case StateCopyMade:
		return s.stepCopyMade(ctx)
	case StateEditing:
		return s.stepEditing(ctx)
	case StateAwaitingEditConfirm:
		return s.stepAwaitingEditConfirm(ctx)
	case StateValidating:
		return s.stepValidating(ctx)
	case StateDiffShown:
		return s.stepDiffShown(ctx)
	case StateAwaitingCommitConfirm:
		return s.stepAwaitingCommitConfirm(ctx)
	case StateUploading:
		return s.stepUploading(ctx)
	case StateDone, StateError:
	}

	return s.state, fmt.Errorf("%w: %s", ErrSessionFinished, s.state)
}

func (s *Session) stepInit(ctx context.Context) (State, error) {
	if s.cfg.Editor == "" || !s.cfg.Runner.CommandExists(s.cfg.Editor) {
		return StateError, fmt.Errorf("%w: %q", ErrEditorNotFound, s.cfg.Editor)
	}

	notify.Activityf(s.out, "downloading %s", s.cfg.Location)

	file, err := objectstore.FetchToTempFile(ctx, s.cfg.Store, s.cfg.Location)
	if err != nil {
		return StateError, fmt.Errorf("download %s: %w", s.cfg.Location, err)
	}

	s.originalPath = file.Name()

	info, statErr := file.Stat()
	closeErr := file.Close()

	err = errors.Join(statErr, closeErr)
	if err != nil {
		return StateError, fmt.Errorf("%w: %w", objectstore.ErrLocalIO, err)
	}

	s.stats.Downloaded = info.Size()
	notify.Successf(s.out, "downloaded %s (%s)", s.cfg.Location, formatBytes(info.Size()))

	return StateDownloaded, nil
}

func (s *Session) stepDownloaded(context.Context) (State, error) {
	path := workingCopyPath(s.originalPath)

	created, err := copyFile(s.originalPath, path)
	if created {
		s.workingPath = path
	}

	if err != nil {
		return StateError, fmt.Errorf("%w: %w", ErrCopyFailed, err)
	}

	return StateCopyMade, nil
}

func (s *Session) stepCopyMade(context.Context) (State, error) {
	if s.diff.Missing() {
		notify.Warningf(s.out, "%s is not installed, changes will not be shown before upload",
			s.diff.Requested())
	}

	s.logger.WithField("diff_tool", s.diff.Tool()).Debug("working copy ready")

	return StateEditing, nil
}

func (s *Session) stepEditing(ctx context.Context) (State, error) {
	notify.Activityf(s.out, "opening %s with %s", s.cfg.Location.Key, s.cfg.Editor)

	args := append(append([]string{}, s.cfg.EditorArgs...), s.workingPath)

	code, err := s.cfg.Runner.RunInteractive(ctx, s.cfg.Editor, args...)
	if err != nil {
		return StateError, fmt.Errorf("run editor %s: %w", s.cfg.Editor, err)
	}

	s.stats.EditorRuns++

	if code != 0 {
		s.logger.WithField("exit_code", code).Warn("editor exited with non-zero status")
	}

	return StateAwaitingEditConfirm, nil
}

func (s *Session) stepAwaitingEditConfirm(ctx context.Context) (State, error) {
	finished, err := s.cfg.Prompter.Confirm(ctx, QuestionFinishedEditing)
	if err != nil {
		return StateError, err //nolint:wrapcheck // cancellation is matched by callers
	}

	if !finished {
		return StateEditing, nil
	}

	if s.cfg.Validator != nil {
		return StateValidating, nil
	}

	return s.afterValidation(), nil
}

func (s *Session) stepValidating(ctx context.Context) (State, error) {
	err := s.cfg.Validator.Validate(s.workingPath)
	if err == nil {
		s.logger.WithField("format", s.cfg.Validator.Name()).Debug("content valid")

		return s.afterValidation(), nil
	}

	if !errors.Is(err, content.ErrInvalidContent) {
		return StateError, fmt.Errorf("validate working copy: %w", err)
	}

	notify.Warningf(s.out, "edited %s: %v", s.cfg.Location.Key, err)

	again, err := s.cfg.Prompter.Confirm(ctx, QuestionEditAgain)
	if err != nil {
		return StateError, err //nolint:wrapcheck // cancellation is matched by callers
	}

	if again {
		return StateEditing, nil
	}

	return s.afterValidation(), nil
}

func (s *Session) stepDiffShown(ctx context.Context) (State, error) {
	res, err := s.diff.Compute(ctx, s.originalPath, s.workingPath)
	if err != nil {
		notify.Warningf(s.out, "could not show changes: %v", err)

		return StateAwaitingCommitConfirm, nil
	}

	s.stats.Diffs++

	if !res.Changed {
		notify.Infof(s.out, "no changes to %s", s.cfg.Location.Key)

		return StateAwaitingCommitConfirm, nil
	}

	notify.Infof(s.out, "changes to %s:", s.cfg.Location.Key)

	output := res.Output
	if !strings.HasSuffix(output, "\n") {
		output += "\n"
	}

	_, err = io.WriteString(s.out, output)
	if err != nil {
		return StateError, fmt.Errorf("write diff: %w", err)
	}

	return StateAwaitingCommitConfirm, nil
}

func (s *Session) stepAwaitingCommitConfirm(ctx context.Context) (State, error) {
	commit, err := s.cfg.Prompter.Confirm(ctx, QuestionCommit)
	if err != nil {
		return StateError, err //nolint:wrapcheck // cancellation is matched by callers
	}

	if !commit {
		return StateEditing, nil
	}

	return StateUploading, nil
}

func (s *Session) stepUploading(ctx context.Context) (State, error) {
	info, err := os.Stat(s.workingPath)
	if err != nil {
		return StateError, fmt.Errorf("%w: %w", objectstore.ErrLocalIO, err)
	}

	notify.Activityf(s.out, "uploading %s", s.cfg.Location)

	err = s.cfg.Store.UploadFromFile(ctx, s.cfg.Location, s.workingPath)
	if err != nil {
		return StateError, fmt.Errorf("upload %s: %w", s.cfg.Location, err)
	}

	s.stats.Uploads++
	s.stats.Uploaded = info.Size()
	notify.Successf(s.out, "uploaded %s (%s)", s.cfg.Location, formatBytes(info.Size()))

	return StateDone, nil
}

// afterValidation skips straight to upload when no diff tool is available.
func (s *Session) afterValidation() State {
	if s.diff.Available() {
		return StateDiffShown
	}

	return StateUploading
}

func (s *Session) cleanup(runErr error) {
	if s.cfg.KeepTemp {
		for _, path := range []string{s.originalPath, s.workingPath} {
			if path != "" {
				notify.Infof(s.out, "kept %s", path)
			}
		}

		return
	}

	s.remove(s.originalPath)

	if runErr != nil && s.failedIn == StateUploading && s.workingPath != "" {
		notify.Warningf(s.out, "your edits are kept in %s", s.workingPath)

		return
	}

	s.remove(s.workingPath)
}

func (s *Session) remove(path string) {
	if path == "" {
		return
	}

	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.WithError(err).WithField("path", path).Warn("failed to remove temporary file")
	}
}

// workingCopyPath keeps the extension last so editors still detect the file type.
func workingCopyPath(original string) string {
	ext := filepath.Ext(original)

	return strings.TrimSuffix(original, ext) + workingCopyMarker + ext
}

// copyFile reports whether dst was created, so a partial copy can still be removed.
func copyFile(src, dst string) (bool, error) {
	in, err := os.Open(src) //nolint:gosec // session-owned temp file
	if err != nil {
		return false, fmt.Errorf("open %s: %w", src, err)
	}

	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:gosec // derived from temp file
	if err != nil {
		return false, fmt.Errorf("create %s: %w", dst, err)
	}

	_, err = io.Copy(out, in)
	closeErr := out.Close()

	err = errors.Join(err, closeErr)
	if err != nil {
		return true, fmt.Errorf("copy to %s: %w", dst, err)
	}

	return true, nil
}

func formatBytes(n int64) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
