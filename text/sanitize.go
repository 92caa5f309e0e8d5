// Package text cleans strings that arrive from the host before they are
// drawn on a terminal.
package text

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Sanitize strips escape sequences and replaces the remaining control
// characters with U+FFFD. Newlines survive when multiline is set.
func Sanitize(s string, multiline bool) string {
	s = StripANSI(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' && multiline {
			return r
		}
		if unicode.IsControl(r) {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}
