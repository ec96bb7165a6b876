// Package cli provides the command wiring and terminal interaction of s3edit.
//
// Subpackages:
//   - cli/cmd: the root command
//   - cli/helpers/editor: editor command resolution with flag > config > environment precedence
//   - cli/ui: terminal detection, confirmation prompts and error handling
package cli
