package util

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal size cannot be determined
const DefaultWidth = 80

type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether w is attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of the terminal behind w, or
// DefaultWidth if w is not a terminal. COLUMNS overrides the detected size.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(fder); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	if cols, ok := os.LookupEnv("COLUMNS"); ok {
		if n := atoi(cols); n > 0 {
			return n
		}
	}
	return DefaultWidth
}

// EmitStyles reports whether SGR sequences should be written to w.
// color.NoColor carries the NO_COLOR and TERM=dumb policy.
func EmitStyles(w io.Writer) bool {
	return !color.NoColor && IsTerminal(w)
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
