package v1alpha1

import (
	"fmt"
	"strings"
)

// DiffTool defines how changes are shown before the commit prompt.
type DiffTool string

const (
	// DiffToolAuto uses git when installed, then diff, and skips the diff step otherwise.
	DiffToolAuto DiffTool = "auto"
	// DiffToolGit uses git diff --no-index.
	DiffToolGit DiffTool = "git"
	// DiffToolDiff uses diff -u.
	DiffToolDiff DiffTool = "diff"
	// DiffToolNone skips the diff step and the commit prompt.
	DiffToolNone DiffTool = "none"
)

// ValidDiffTools returns supported diff tool values.
func ValidDiffTools() []DiffTool {
	return []DiffTool{DiffToolAuto, DiffToolGit, DiffToolDiff, DiffToolNone}
}

// Set for DiffTool (pflag.Value).
func (d *DiffTool) Set(value string) error {
	for _, tool := range ValidDiffTools() {
		if strings.EqualFold(value, string(tool)) {
			*d = tool

			return nil
		}
	}

	return fmt.Errorf("%w: %s (valid options: %s)",
		ErrInvalidDiffTool, value, strings.Join(d.ValidValues(), ", "))
}

// String returns the string representation of the DiffTool.
func (d *DiffTool) String() string {
	return string(*d)
}

// Type returns the type of the DiffTool.
func (d *DiffTool) Type() string {
	return "DiffTool"
}

// ValidValues returns all valid DiffTool values as strings.
func (d *DiffTool) ValidValues() []string {
	values := make([]string, 0, len(ValidDiffTools()))
	for _, tool := range ValidDiffTools() {
		values = append(values, string(tool))
	}

	return values
}
