package confirm_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/devantler-tech/s3edit/pkg/cli/ui/confirm"
	"github.com/stretchr/testify/require"
)

// promptTestCase is a test case for Prompter.Confirm.
type promptTestCase struct {
	name     string
	input    string
	expected bool
}

func getPromptTestCases() []promptTestCase {
	return []promptTestCase{
		{"y_confirms", "y\n", true},
		{"yes_lowercase_confirms", "yes\n", true},
		{"yes_uppercase_confirms", "YES\n", true},
		{"y_with_spaces_confirms", "  Y  \n", true},
		{"no_denies", "no\n", false},
		{"n_denies", "n\n", false},
		{"empty_defaults_to_no", "\n", false},
		{"random_text_denies", "maybe\n", false},
		{"answer_without_newline_at_eof", "yes", true},
	}
}

//nolint:paralleltest,tparallel // Subtests cannot run in parallel - they share stdin reader state
func TestPrompter_Confirm(t *testing.T) {
	for _, testCase := range getPromptTestCases() {
		t.Run(testCase.name, func(t *testing.T) {
			restoreStdin := confirm.SetStdinReaderForTests(strings.NewReader(testCase.input))
			defer restoreStdin()

			var out bytes.Buffer

			result, err := confirm.NewPrompter(&out).Confirm(context.Background(), "Do you finish editing?")

			require.NoError(t, err)
			require.Equal(t, testCase.expected, result)
			require.Equal(t, "Do you finish editing? [y/N] ", out.String())
		})
	}
}

//nolint:paralleltest // shares stdin reader state
func TestPrompter_ConfirmKeepsBufferedInputAcrossPrompts(t *testing.T) {
	restoreStdin := confirm.SetStdinReaderForTests(strings.NewReader("n\ny\nyes\n"))
	defer restoreStdin()

	prompter := confirm.NewPrompter(io.Discard)

	for _, expected := range []bool{false, true, true} {
		answer, err := prompter.Confirm(context.Background(), "again?")
		require.NoError(t, err)
		require.Equal(t, expected, answer)
	}

	_, err := prompter.Confirm(context.Background(), "again?")
	require.ErrorIs(t, err, confirm.ErrCancelled)
}

//nolint:paralleltest // shares stdin reader state
func TestPrompter_ConfirmEndOfInputCancels(t *testing.T) {
	restoreStdin := confirm.SetStdinReaderForTests(strings.NewReader(""))
	defer restoreStdin()

	answer, err := confirm.NewPrompter(io.Discard).Confirm(context.Background(), "commit?")
	require.ErrorIs(t, err, confirm.ErrCancelled)
	require.False(t, answer)
}

//nolint:paralleltest // shares stdin reader state
func TestPrompter_ConfirmContextCancelled(t *testing.T) {
	blocking, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	restoreStdin := confirm.SetStdinReaderForTests(blocking)
	defer restoreStdin()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := confirm.NewPrompter(io.Discard).Confirm(ctx, "commit?")
	require.ErrorIs(t, err, confirm.ErrCancelled)
}

//nolint:paralleltest // shares stdin reader state
func TestPrompter_ExitOnCancel(t *testing.T) {
	restoreStdin := confirm.SetStdinReaderForTests(strings.NewReader(""))
	defer restoreStdin()

	var (
		out      bytes.Buffer
		exitCode = -1
	)

	prompter := confirm.NewPrompter(&out,
		confirm.WithExitOnCancel(),
		confirm.WithExitFunc(func(code int) { exitCode = code }),
	)

	_, err := prompter.Confirm(context.Background(), "commit?")
	require.ErrorIs(t, err, confirm.ErrCancelled)
	require.Equal(t, 1, exitCode)
	require.Contains(t, out.String(), "✗ cancelled by user")
}

func TestIsTTY_Override(t *testing.T) {
	t.Parallel()

	restoreTTY := confirm.SetTTYCheckerForTests(func() bool { return true })

	require.True(t, confirm.IsTTY())

	restoreTTY()

	restoreTTY = confirm.SetTTYCheckerForTests(func() bool { return false })

	require.False(t, confirm.IsTTY())

	restoreTTY()
}

func TestErrCancelled(t *testing.T) {
	t.Parallel()

	require.EqualError(t, confirm.ErrCancelled, "prompt cancelled")
}
