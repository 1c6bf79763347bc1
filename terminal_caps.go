package linnet

import (
	"os"

	"golang.org/x/term"
)

// Capabilities describes what the attached input device supports.
type Capabilities struct {
	TermType   string // value of $TERM at detection time
	IsTerminal bool   // true if the device is an interactive terminal
	Supported  bool   // true if the terminal type can be driven in raw mode
	Width      int    // columns, best effort
}

// Terminal types that cannot interpret the escape sequences the refresh
// engine emits. Editing falls back to a plain line read on these.
var unsupportedTerms = map[string]bool{
	"dumb":   true,
	"cons25": true,
	"emacs":  true,
}

// detectCapabilities inspects the given input descriptor and the TERM
// environment variable.
func detectCapabilities(fd int) Capabilities {
	caps := Capabilities{
		TermType: os.Getenv("TERM"),
		Width:    defaultColumns,
	}
	caps.IsTerminal = term.IsTerminal(fd)
	caps.Supported = caps.IsTerminal && !unsupportedTerms[caps.TermType]
	if w := windowColumns(fd); w > 0 {
		caps.Width = w
	}
	return caps
}
