package style

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTerminal reports whether w is a terminal (or a cygwin pty).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorEnabled reports whether styled output should be written to w.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !IsTerminal(w) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// ClearScreen clears w when it is a terminal and is a no-op otherwise, so
// piped and captured output never carries control sequences.
func ClearScreen(w io.Writer) {
	if !IsTerminal(w) {
		return
	}
	termenv.NewOutput(w).ClearScreen()
}
