// Package confirm provides yes/no prompts with explicit cancellation outcomes.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/devantler-tech/s3edit/pkg/utils/notify"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user interrupts a prompt or input ends before an answer.
var ErrCancelled = errors.New("prompt cancelled")

// Test override variables with mutexes for thread safety.
var (
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderOverride io.Reader

	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func() bool
)

// SetStdinReaderForTests overrides the stdin reader for testing.
// Returns a restore function that should be called to reset the override.
func SetStdinReaderForTests(reader io.Reader) func() {
	stdinReaderMu.Lock()

	previous := stdinReaderOverride
	stdinReaderOverride = reader

	stdinReaderMu.Unlock()

	return func() {
		stdinReaderMu.Lock()

		stdinReaderOverride = previous

		stdinReaderMu.Unlock()
	}
}

// SetTTYCheckerForTests overrides the TTY checker for testing.
// Returns a restore function that should be called to reset the override.
func SetTTYCheckerForTests(checker func() bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

// getStdinReader returns the stdin reader to use, respecting test overrides.
func getStdinReader() io.Reader {
	stdinReaderMu.RLock()
	defer stdinReaderMu.RUnlock()

	if stdinReaderOverride != nil {
		return stdinReaderOverride
	}

	return os.Stdin
}

// IsTTY returns true if stdin is connected to a terminal.
func IsTTY() bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override()
	}

	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

// Prompter asks yes/no questions on a shared input stream. It is not safe for concurrent use.
type Prompter struct {
	writer       io.Writer
	input        io.Reader
	exitOnCancel bool
	exit         func(code int)

	reader  *bufio.Reader
	pending chan line
}

type line struct {
	text string
	err  error
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithExitOnCancel makes a cancelled prompt print a message and terminate the process with
// status 1 instead of returning [ErrCancelled]. Temporary resources are not cleaned up.
func WithExitOnCancel() Option {
	return func(p *Prompter) {
		p.exitOnCancel = true
	}
}

// WithExitFunc replaces os.Exit for [WithExitOnCancel].
func WithExitFunc(exit func(code int)) Option {
	return func(p *Prompter) {
		p.exit = exit
	}
}

// NewPrompter creates a prompter writing questions to writer and reading answers from stdin
// (or the test override).
func NewPrompter(writer io.Writer, opts ...Option) *Prompter {
	if writer == nil {
		writer = os.Stdout
	}

	prompter := &Prompter{
		writer: writer,
		input:  getStdinReader(),
		exit:   os.Exit,
	}

	for _, opt := range opts {
		opt(prompter)
	}

	return prompter
}

// Confirm shows "question [y/N] " and waits for an answer. "y" and "yes" (any case) confirm;
// anything else, including an empty line, declines. An interrupt signal, context
// cancellation or end of input yields [ErrCancelled].
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	_, err := fmt.Fprintf(p.writer, "%s [y/N] ", question)
	if err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answers := p.readLine()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		return false, p.cancel()
	case answer := <-answers:
		p.pending = nil

		if answer.err != nil && strings.TrimSpace(answer.text) == "" {
			return false, p.cancel()
		}

		return isYes(answer.text), nil
	}
}

// readLine reads one line in the background so Confirm can still observe signals. Input is
// only read while a prompt waits, leaving the terminal to the editor in between. A read left
// over from a cancelled prompt is reused.
func (p *Prompter) readLine() <-chan line {
	if p.pending != nil {
		return p.pending
	}

	if p.reader == nil {
		p.reader = bufio.NewReader(p.input)
	}

	answers := make(chan line, 1)
	reader := p.reader

	go func() {
		text, err := reader.ReadString('\n')
		answers <- line{text: text, err: err}
	}()

	p.pending = answers

	return answers
}

func (p *Prompter) cancel() error {
	_, _ = fmt.Fprintln(p.writer)

	if p.exitOnCancel {
		notify.Errorf(p.writer, "cancelled by user")
		p.exit(1)
	}

	return ErrCancelled
}

func isYes(answer string) bool {
	answer = strings.TrimSpace(answer)

	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}
