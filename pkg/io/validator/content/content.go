// Package content checks that an edited object still parses in the format its key implies.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// ErrInvalidContent is returned when a file does not parse in its expected format.
var ErrInvalidContent = errors.New("invalid content")

var errEmptyDocument = errors.New("empty document")

// Validator checks a local file.
type Validator interface {
	// Name is the format name shown to the user.
	Name() string
	// Validate returns ErrInvalidContent wrapped with the parse error.
	Validate(path string) error
}

// ForKey returns the validator for key's extension, or nil when the format is unknown.
func ForKey(key string) Validator {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".json":
		return JSONValidator{}
	case ".yaml", ".yml":
		return YAMLValidator{}
	default:
		return nil
	}
}

// JSONValidator accepts a single JSON value.
type JSONValidator struct{}

// Name returns "JSON".
func (JSONValidator) Name() string { return "JSON" }

// Validate checks that path holds valid JSON.
func (JSONValidator) Validate(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is a session temp file
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: JSON: %w", ErrInvalidContent, errEmptyDocument)
	}

	var value any

	err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &value)
	if err != nil {
		return fmt.Errorf("%w: JSON: %w", ErrInvalidContent, err)
	}

	return nil
}

// YAMLValidator accepts one or more YAML documents.
type YAMLValidator struct{}

// Name returns "YAML".
func (YAMLValidator) Name() string { return "YAML" }

// Validate checks that every document in path parses.
func (YAMLValidator) Validate(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is a session temp file
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))

	for {
		var node yaml.Node

		err = decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("%w: YAML: %w", ErrInvalidContent, err)
		}
	}
}
