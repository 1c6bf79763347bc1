package linnet

// Completer returns completion candidates for the current line. It is
// invoked synchronously when the user presses Tab and must not block
// indefinitely; the session is suspended until it returns. Returning no
// candidates leaves the line untouched.
type Completer func(line string) []string

// Hinter returns an inline hint to draw after the current line, or nil for
// no hint. It is invoked on every refresh, so it should be cheap.
type Hinter func(line string) *Hint

// Hint is a suggestion rendered after the buffer. It is display-only and
// never becomes part of the editable text.
type Hint struct {
	Text  string
	Color int // ANSI SGR color code (30-37, 90-97); negative selects grey
	Bold  bool
}
