package objectstore

import (
	"errors"
	"fmt"
)

// Store errors. Every [StoreError] unwraps to exactly one of these.
var (
	// ErrNotFound indicates the bucket or object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrAccessDenied indicates the credentials are missing, invalid or not authorized.
	ErrAccessDenied = errors.New("access denied")
	// ErrTransport indicates a network, timeout or other non-classified remote failure.
	ErrTransport = errors.New("transport error")
	// ErrUnsupportedScheme is returned by [NewStore] for schemes without a backend.
	ErrUnsupportedScheme = errors.New("unsupported object store scheme")
)

// StoreError describes a failed remote operation against a location.
type StoreError struct {
	Op       string
	Location Location
	Kind     error
	Err      error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Location, e.Kind)
	}

	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Location, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the SDK cause to errors.Is/errors.As.
func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func newStoreError(op string, loc Location, kind, cause error) *StoreError {
	return &StoreError{Op: op, Location: loc, Kind: kind, Err: cause}
}
