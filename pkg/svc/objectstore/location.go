package objectstore

import (
	"errors"
	"fmt"
	"strings"
)

// Scheme identifies the object store backend addressed by a URL.
type Scheme string

const (
	// SchemeS3 addresses Amazon S3 and S3-compatible stores.
	SchemeS3 Scheme = "s3"
	// SchemeGCS addresses Google Cloud Storage.
	SchemeGCS Scheme = "gs"
)

// Prefix returns the URL prefix for the scheme, e.g. "s3://".
func (s Scheme) Prefix() string {
	return string(s) + "://"
}

// SupportedSchemes returns the schemes accepted by [Parse].
func SupportedSchemes() []Scheme {
	return []Scheme{SchemeS3, SchemeGCS}
}

// Parse errors.
var (
	// ErrInvalidScheme indicates the URL does not start with a supported store prefix.
	ErrInvalidScheme = errors.New("invalid object url scheme")
	// ErrInvalidPath indicates the URL does not address exactly one bucket and one key.
	ErrInvalidPath = errors.New("invalid object url path")
)

// ParseError provides details about an object URL that failed to parse.
type ParseError struct {
	URL    string
	Reason string
	kind   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.kind, e.URL, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.kind
}

// Location identifies a single object. The zero value is not a valid location.
type Location struct {
	Scheme Scheme
	Bucket string
	Key    string
}

// String renders the location as scheme://bucket/key.
func (l Location) String() string {
	return l.Scheme.Prefix() + l.Bucket + "/" + l.Key
}

// ParseOptions controls how object URLs are split.
type ParseOptions struct {
	// AllowNestedKeys splits on the first "/" after the bucket only, so keys such as
	// "folder/file.txt" are accepted. When false, exactly one key segment is required.
	AllowNestedKeys bool
}

// Parse parses a scheme://bucket/key URL in strict mode: the remainder after the scheme
// prefix must split on "/" into exactly two non-empty components.
func Parse(url string) (Location, error) {
	return ParseWithOptions(url, ParseOptions{})
}

// ParseWithOptions parses a scheme://bucket/key URL. No normalization or percent-decoding
// is applied to either component.
func ParseWithOptions(url string, opts ParseOptions) (Location, error) {
	scheme, rest, ok := cutScheme(url)
	if !ok {
		return Location{}, &ParseError{
			URL:    url,
			Reason: "must start with " + supportedPrefixes(),
			kind:   ErrInvalidScheme,
		}
	}

	var parts []string
	if opts.AllowNestedKeys {
		parts = strings.SplitN(rest, "/", 2)
	} else {
		parts = strings.Split(rest, "/")
	}

	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		example := scheme.Prefix() + "bucket/key"

		return Location{}, &ParseError{
			URL:    url,
			Reason: "must address exactly one bucket and one key, e.g. " + example,
			kind:   ErrInvalidPath,
		}
	}

	return Location{Scheme: scheme, Bucket: parts[0], Key: parts[1]}, nil
}

func cutScheme(url string) (Scheme, string, bool) {
	for _, scheme := range SupportedSchemes() {
		if rest, ok := strings.CutPrefix(url, scheme.Prefix()); ok {
			return scheme, rest, true
		}
	}

	return "", "", false
}

func supportedPrefixes() string {
	prefixes := make([]string, 0, len(SupportedSchemes()))
	for _, scheme := range SupportedSchemes() {
		prefixes = append(prefixes, scheme.Prefix())
	}

	return strings.Join(prefixes, " or ")
}
