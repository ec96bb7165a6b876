package v1alpha1

import "errors"

// ErrURLRequired is returned when no object URL is configured.
var ErrURLRequired = errors.New("object url is required (--s3-url)")

// ErrInvalidDiffTool is returned when an unknown diff tool is specified.
var ErrInvalidDiffTool = errors.New("invalid diff tool")

// ErrInvalidLogLevel is returned when the log level is not a logrus level name.
var ErrInvalidLogLevel = errors.New("invalid log level")

// ErrIncompleteCredentials is returned when only one half of a static key pair is set.
var ErrIncompleteCredentials = errors.New("access_key_id and secret_access_key must be set together")
