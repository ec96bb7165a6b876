// Package logging builds the diagnostic logger and adapts it for the AWS SDK.
//
// User-facing output goes through notify; this logger carries debug detail such as
// state transitions and SDK request logs, written to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/smithy-go/logging"
	"github.com/sirupsen/logrus"
)

// New returns a text logger at level writing to writer (stderr when nil).
func New(level string, writer io.Writer) (*logrus.Logger, error) {
	if writer == nil {
		writer = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(writer)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02T15:04:05Z07:00",
	})

	err := SetLevel(logger, level)
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// SetLevel parses level and applies it to logger.
func SetLevel(logger *logrus.Logger, level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("set log level: %w", err)
	}

	logger.SetLevel(parsed)

	return nil
}

// SmithyLogger forwards AWS SDK log lines to a logrus logger.
type SmithyLogger struct {
	entry *logrus.Entry
}

var _ logging.Logger = (*SmithyLogger)(nil)

// NewSmithyLogger wraps logger with a component=aws-sdk field.
func NewSmithyLogger(logger logrus.FieldLogger) *SmithyLogger {
	return &SmithyLogger{entry: logger.WithField("component", "aws-sdk")}
}

// Logf implements logging.Logger. Warnings stay warnings; everything else is debug.
func (l *SmithyLogger) Logf(classification logging.Classification, format string, v ...any) {
	message := strings.TrimRight(fmt.Sprintf(format, v...), "\n")

	if classification == logging.Warn {
		l.entry.Warn(message)

		return
	}

	l.entry.Debug(message)
}
