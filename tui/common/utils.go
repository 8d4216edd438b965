package common

import "github.com/charmbracelet/x/ansi"

// Truncate shortens s to at most width terminal cells, ending with "…".
// A non-positive width leaves s untouched.
func Truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
