// Package io provides configuration loading and local content checks.
//
// Subpackages:
//   - config-manager: flag, environment and YAML file layering into edit options
//   - validator/content: JSON and YAML parse checks for edited files
package io
