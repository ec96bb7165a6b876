package v1alpha1

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// Validate reports the first invalid option.
func (o *Options) Validate() error {
	if o.URL == "" {
		return ErrURLRequired
	}

	if o.DiffTool != "" && !slices.Contains(ValidDiffTools(), o.DiffTool) {
		return fmt.Errorf("%w: %s", ErrInvalidDiffTool, o.DiffTool)
	}

	if o.LogLevel != "" {
		_, err := logrus.ParseLevel(o.LogLevel)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidLogLevel, o.LogLevel)
		}
	}

	if (o.AccessKeyID == "") != (o.SecretAccessKey == "") {
		return ErrIncompleteCredentials
	}

	return nil
}
