// Package envvar expands ${NAME} placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"
)

// pattern matches ${VAR_NAME}; bare $VAR is left alone so secrets containing "$" survive.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Expand replaces placeholders using the process environment.
func Expand(value string) string {
	return ExpandWith(value, os.Getenv)
}

// ExpandWith replaces placeholders using getenv. Unset variables expand to "".
func ExpandWith(value string, getenv func(string) string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		return getenv(match[2 : len(match)-1])
	})
}

// ExpandAll expands every field in place.
func ExpandAll(getenv func(string) string, fields ...*string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	for _, field := range fields {
		if field != nil {
			*field = ExpandWith(*field, getenv)
		}
	}
}
