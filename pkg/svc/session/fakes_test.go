package session_test

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/devantler-tech/s3edit/pkg/cli/ui/confirm"
	"github.com/devantler-tech/s3edit/pkg/svc/objectstore"
	"github.com/devantler-tech/s3edit/pkg/utils/runner"
)

var errUploadRefused = errors.New("upload refused")

// fakeStore serves one object and records every upload.
type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploads   [][]byte
	fetches   int
	uploadErr error
}

func newFakeStore(loc objectstore.Location, data string) *fakeStore {
	return &fakeStore{objects: map[string][]byte{loc.String(): []byte(data)}}
}

func (f *fakeStore) FetchToFile(_ context.Context, loc objectstore.Location, dst io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches++

	data, ok := f.objects[loc.String()]
	if !ok {
		return &objectstore.StoreError{Op: "get", Location: loc, Kind: objectstore.ErrNotFound}
	}

	_, err := dst.Write(data)

	return err
}

func (f *fakeStore) UploadFromFile(_ context.Context, loc objectstore.Location, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return &objectstore.StoreError{Op: "put", Location: loc, Kind: objectstore.ErrTransport, Err: f.uploadErr}
	}

	data, err := os.ReadFile(path) //nolint:gosec // test temp file
	if err != nil {
		return err
	}

	f.uploads = append(f.uploads, data)
	f.objects[loc.String()] = data

	return nil
}

// fakeRunner pretends a set of programs is installed. The editor is simulated by edit,
// which receives the working copy path and the 1-based run number.
type fakeRunner struct {
	installed   map[string]bool
	edit        func(path string, run int) error
	editorCode  int
	diffResult  runner.Result
	interactive [][]string
	captured    [][]string
}

func (f *fakeRunner) CommandExists(name string) bool { return f.installed[name] }

func (f *fakeRunner) RunCaptured(_ context.Context, name string, args ...string) (runner.Result, error) {
	f.captured = append(f.captured, append([]string{name}, args...))

	return f.diffResult, nil
}

func (f *fakeRunner) RunInteractive(_ context.Context, name string, args ...string) (int, error) {
	f.interactive = append(f.interactive, append([]string{name}, args...))

	if f.edit != nil {
		err := f.edit(args[len(args)-1], len(f.interactive))
		if err != nil {
			return 0, err
		}
	}

	return f.editorCode, nil
}

// overwrite returns an edit func replacing the working copy with contents[run-1],
// or leaving it untouched once contents runs out.
func overwrite(contents ...string) func(string, int) error {
	return func(path string, run int) error {
		if run > len(contents) {
			return nil
		}

		return os.WriteFile(path, []byte(contents[run-1]), 0o600)
	}
}

// scriptedPrompter answers questions in order and cancels once the script runs out.
type scriptedPrompter struct {
	answers   []bool
	questions []string
}

func (p *scriptedPrompter) Confirm(_ context.Context, question string) (bool, error) {
	p.questions = append(p.questions, question)

	if len(p.questions) > len(p.answers) {
		return false, confirm.ErrCancelled
	}

	return p.answers[len(p.questions)-1], nil
}
