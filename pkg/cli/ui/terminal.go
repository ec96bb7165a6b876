// Package ui holds terminal helpers shared by the command and its prompts.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd())) //nolint:gosec // fd fits in int
}

// SetTerminalTitle writes the ANSI sequence setting the window title to w.
// Control characters in title are dropped so an object key cannot inject escapes.
func SetTerminalTitle(w io.Writer, title string) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}

		return r
	}, title)

	// ESC ] 0 ; title BEL sets both icon name and window title.
	_, _ = fmt.Fprintf(w, "\033]0;%s\007", clean)
}
