package display

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal color codes. They are blanked by SetColor(false).
var (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

var codes = [...]*string{&Reset, &Red, &Green, &Yellow, &Blue, &Magenta, &Cyan, &White}

var ansi = [...]string{"\033[0m", "\033[31m", "\033[32m", "\033[33m", "\033[34m", "\033[35m", "\033[36m", "\033[37m"}

// SetColor turns the escape codes on or off. Call it before any output.
func SetColor(enabled bool) {
	for i, c := range codes {
		if enabled {
			*c = ansi[i]
		} else {
			*c = ""
		}
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// AutoColor enables color only when w is a terminal and NO_COLOR is unset.
func AutoColor(w io.Writer) bool {
	enabled := IsTerminal(w) && os.Getenv("NO_COLOR") == ""
	SetColor(enabled)
	return enabled
}

// Prompt returns a colored prompt string
func Prompt(text string) string {
	return Yellow + text + " > " + Reset
}
