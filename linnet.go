package linnet

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// ErrInterrupted is returned by ReadLine when the user presses Ctrl-C. It
// is an expected outcome, distinct from I/O failures.
var ErrInterrupted = errors.New("linnet: interrupted")

// Options configures editor creation.
type Options struct {
	HistoryLimit int  // retained history entries (default: 128)
	Multiline    bool // wrap long lines over multiple rows instead of scrolling
	MaskRune     rune // render every code point as this rune; 0 disables (password entry)

	// Input and Output default to os.Stdin and os.Stdout. Raw-mode editing
	// requires Input to be an interactive terminal; anything else gets the
	// plain line-read fallback.
	Input  io.Reader
	Output io.Writer
}

// Editor reads edited lines from a terminal. It owns the history across
// calls; each ReadLine call runs exactly one editing session. An Editor is
// not safe for concurrent ReadLine calls.
type Editor struct {
	in  io.Reader
	out io.Writer

	history   *History
	completer Completer
	hinter    Hinter
	multiline bool
	mask      rune

	scanner *bufio.Scanner // lazily created for the non-terminal fallback
}

// New creates an editor with the given options.
func New(opts Options) *Editor {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	limit := opts.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &Editor{
		in:        opts.Input,
		out:       opts.Output,
		history:   newHistory(limit),
		multiline: opts.Multiline,
		mask:      opts.MaskRune,
	}
}

// SetCompleter registers the Tab-completion callback. A nil completer makes
// Tab insert a literal tab character.
func (e *Editor) SetCompleter(fn Completer) {
	e.completer = fn
}

// SetHinter registers the inline-hint callback.
func (e *Editor) SetHinter(fn Hinter) {
	e.hinter = fn
}

// SetMultiline switches between scrolling single-row rendering and wrapped
// multi-row rendering.
func (e *Editor) SetMultiline(on bool) {
	e.multiline = on
}

// SetMask sets the mask rune for password entry; 0 disables masking.
func (e *Editor) SetMask(r rune) {
	e.mask = r
}

// AppendHistory adds a line to the history, subject to the duplicate and
// capacity rules. Accepted lines are appended automatically; this is for
// lines obtained elsewhere.
func (e *Editor) AppendHistory(line string) bool {
	return e.history.Add(line)
}

// LoadHistory replaces the history with the contents of the file at path.
func (e *Editor) LoadHistory(path string) error {
	return e.history.Load(path)
}

// SaveHistory writes the history to the file at path.
func (e *Editor) SaveHistory(path string) error {
	return e.history.Save(path)
}

// HistoryLen returns the number of history entries.
func (e *Editor) HistoryLen() int {
	return e.history.Len()
}

// ReadLine reads one line, editing interactively when the input is a
// supported terminal. On Enter it returns the line without its trailing
// newline and appends it to the history. At end of input with an empty
// buffer it returns io.EOF; on Ctrl-C it returns ErrInterrupted.
func (e *Editor) ReadLine(prompt string) (string, error) {
	f, ok := e.in.(*os.File)
	if !ok {
		return e.readPlain()
	}
	caps := detectCapabilities(int(f.Fd()))
	if !caps.IsTerminal {
		// Piped or redirected input: read it untouched.
		return e.readPlain()
	}
	if !caps.Supported {
		// A terminal we cannot drive in raw mode still gets a prompt.
		if _, err := io.WriteString(e.out, prompt); err != nil {
			return "", err
		}
		return e.readPlain()
	}
	return e.readRaw(f, prompt)
}

// readRaw runs one raw-mode editing session. Raw mode is restored on every
// exit path, including errors and interrupts.
func (e *Editor) readRaw(f *os.File, prompt string) (string, error) {
	fd := int(f.Fd())
	state, err := enableRawMode(fd)
	if err != nil {
		return "", err
	}
	defer restoreMode(fd, state)

	s := newSession(e.in, e.out, prompt)
	s.history = e.history
	s.completer = e.completer
	s.hinter = e.hinter
	s.multiline = e.multiline
	s.mask = e.mask
	s.columns = e.columnsFunc(fd)

	line, err := s.run()
	io.WriteString(e.out, "\r\n")
	return line, err
}

// columnsFunc picks the descriptor to query for the terminal width: the
// output when it is a file, otherwise the input.
func (e *Editor) columnsFunc(inFd int) func() int {
	if f, ok := e.out.(*os.File); ok {
		fd := int(f.Fd())
		return func() int { return windowColumns(fd) }
	}
	return func() int { return windowColumns(inFd) }
}

// readPlain reads one unedited line: no escape decoding, no rendering.
// It is the fallback for pipes and unsupported terminals.
func (e *Editor) readPlain() (string, error) {
	if e.scanner == nil {
		e.scanner = bufio.NewScanner(e.in)
	}
	if !e.scanner.Scan() {
		if err := e.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return e.scanner.Text(), nil
}
