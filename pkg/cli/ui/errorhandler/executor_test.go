package errorhandler_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/devantler-tech/s3edit/pkg/cli/ui/confirm"
	"github.com/devantler-tech/s3edit/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/s3edit/pkg/svc/objectstore"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTestBoom        = errors.New("boom")
	errOriginalFailure = errors.New("original failure")
	errBoomOriginal    = errors.New("boom: original failure")
)

type ctxKey struct{}

func TestExecutorExecuteSuccess(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:  "s3edit",
		RunE: func(*cobra.Command, []string) error { return nil },
	}

	require.NoError(t, errorhandler.NewExecutor().Execute(context.Background(), cmd))
}

func TestExecutorExecuteNilCommand(t *testing.T) {
	t.Parallel()

	require.NoError(t, errorhandler.NewExecutor().Execute(context.Background(), nil))
}

func TestExecutorExecutePassesContext(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	var seen any

	cmd := &cobra.Command{
		Use: "s3edit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seen = cmd.Context().Value(ctxKey{})

			return nil
		},
	}

	require.NoError(t, errorhandler.NewExecutor().Execute(ctx, cmd))
	assert.Equal(t, "marker", seen)
}

func TestExecutorExecuteUnknownFlag(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:  "s3edit",
		RunE: func(*cobra.Command, []string) error { return nil },
	}
	cmd.SetArgs([]string{"--nope"})

	err := errorhandler.NewExecutor().Execute(context.Background(), cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag: --nope")
	assert.NotContains(t, err.Error(), "Error: ")
}

func TestCommandErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stderr   string
		cause    error
		expected string
	}{
		{"cause only when message empty", "", errTestBoom, "boom"},
		{"message and cause concatenated when distinct", "normalized", errOriginalFailure, "normalized: original failure"},
		{"message retained when it includes cause", "boom: original failure", errBoomOriginal, "boom: original failure"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{
				Use:           "s3edit",
				SilenceErrors: true,
				SilenceUsage:  true,
				RunE: func(cmd *cobra.Command, _ []string) error {
					if testCase.stderr != "" {
						cmd.PrintErrln(testCase.stderr)
					}

					return testCase.cause
				},
			}

			err := errorhandler.NewExecutor().Execute(context.Background(), cmd)

			var cmdErr *errorhandler.CommandError
			require.ErrorAs(t, err, &cmdErr)
			assert.Equal(t, testCase.expected, cmdErr.Error())
			require.ErrorIs(t, err, testCase.cause)
		})
	}
}

func TestCommandErrorNilAndEmpty(t *testing.T) {
	t.Parallel()

	var nilErr *errorhandler.CommandError

	assert.Empty(t, nilErr.Error())
	require.NoError(t, nilErr.Unwrap())
	assert.Empty(t, (&errorhandler.CommandError{}).Error())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	storeErr := &objectstore.StoreError{Op: "get", Kind: objectstore.ErrNotFound}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, errorhandler.ExitOK},
		{"cancelled", confirm.ErrCancelled, errorhandler.ExitCancelled},
		{"wrapped cancelled", fmt.Errorf("session: %w", confirm.ErrCancelled), errorhandler.ExitCancelled},
		{"store failure", storeErr, errorhandler.ExitFailure},
		{"plain", errTestBoom, errorhandler.ExitFailure},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, errorhandler.ExitCode(testCase.err))
		})
	}
}

func TestExitCodeThroughExecutor(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:           "s3edit",
		SilenceErrors: true,
		RunE:          func(*cobra.Command, []string) error { return confirm.ErrCancelled },
	}

	err := errorhandler.NewExecutor().Execute(context.Background(), cmd)

	assert.Equal(t, 130, errorhandler.ExitCode(err))
}

func TestDefaultNormalizerNormalize(t *testing.T) {
	t.Parallel()

	normalizer := errorhandler.DefaultNormalizer{}

	assert.Empty(t, normalizer.Normalize("   \n\t  "))
	assert.Equal(t, "something bad\nRun help", normalizer.Normalize("  Error: something bad \nRun help\n"))
}
