package linnet

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Use this width when the terminal cannot tell us how many columns it has.
const defaultColumns = 80

// enableRawMode captures the terminal's current attribute state and switches
// it to raw mode: no echo, no canonical line buffering, and no signal
// generation, so Ctrl-C arrives as a plain byte. The returned state must be
// handed back to restoreMode on every exit path.
func enableRawMode(fd int) (*term.State, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	return state, nil
}

// restoreMode restores the attribute state captured by enableRawMode.
func restoreMode(fd int, state *term.State) {
	if state != nil {
		term.Restore(fd, state)
	}
}

// windowColumns queries the terminal width via TIOCGWINSZ. It returns 0 when
// the query fails or reports no width; callers keep their previous width in
// that case.
func windowColumns(fd int) int {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 0
	}
	return int(ws.Col)
}

// clearScreen erases the display and homes the cursor.
func clearScreen(w io.Writer) error {
	_, err := io.WriteString(w, "\x1b[H\x1b[2J")
	return err
}

// beep rings the terminal bell.
func beep(w io.Writer) {
	io.WriteString(w, "\x07")
}
