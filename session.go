package linnet

import (
	"io"

	"github.com/mattn/go-runewidth"
)

// session is the live editing context for one raw-mode ReadLine call. It is
// created when the call starts and discarded when it returns; the buffer
// and cursor are exclusively owned by the session for its duration.
type session struct {
	in  *decoder
	out io.Writer

	buf         LineBuffer
	prompt      string
	promptWidth int

	history *History
	histIdx int // browsing cursor, counted back from the scratch entry

	completer Completer
	hinter    Hinter

	multiline bool
	mask      rune // 0 disables masking

	columns     func() int
	cols        int
	oldPosWidth int // cursor column width at the previous refresh (multiline)
	maxRows     int // rows used so far by the current line (multiline)
}

func newSession(in io.Reader, out io.Writer, prompt string) *session {
	return &session{
		in:          newDecoder(in),
		out:         out,
		prompt:      prompt,
		promptWidth: runewidth.StringWidth(prompt),
		cols:        defaultColumns,
	}
}

// run drives the edit loop until the line is accepted, input ends, the
// user interrupts, or I/O fails. The scratch history entry pushed at the
// start is always removed again before run returns.
func (s *session) run() (string, error) {
	s.history.push(s.buf.String())
	s.histIdx = 0
	line, err := s.loop()
	s.history.pop()
	if err == nil && line != "" {
		s.history.Add(line)
	}
	return line, err
}

func (s *session) loop() (string, error) {
	if err := s.refresh(); err != nil {
		return "", err
	}
	for {
		ev, err := s.in.next()
		if err != nil {
			return "", err
		}

		changed := false
		switch ev.kind {
		case evNone:
			continue

		case evAccept:
			s.buf.MoveEnd()
			if err := s.refreshWithoutHint(); err != nil {
				return "", err
			}
			return s.buf.String(), nil

		case evInterrupt:
			return "", ErrInterrupted

		case evEndOfInput:
			return "", io.EOF

		case evDeleteOrEOF:
			if s.buf.Len() == 0 {
				return "", io.EOF
			}
			changed = s.buf.DeleteChar()

		case evComplete:
			if s.completer == nil {
				s.buf.InsertRune('\t')
				changed = true
				break
			}
			if err := s.completeLine(); err != nil {
				return "", err
			}
			continue

		case evInsert:
			s.buf.Insert(ev.text)
			changed = true
		case evBackspace:
			changed = s.buf.Backspace()
		case evDeleteChar:
			changed = s.buf.DeleteChar()
		case evMoveLeft:
			changed = s.buf.MoveLeft()
		case evMoveRight:
			changed = s.buf.MoveRight()
		case evMoveHome:
			changed = s.buf.MoveHome()
		case evMoveEnd:
			changed = s.buf.MoveEnd()
		case evKillToEnd:
			changed = s.buf.KillToEnd()
		case evKillToStart:
			changed = s.buf.KillToStart()
		case evTranspose:
			changed = s.buf.Transpose()
		case evDeleteWord:
			changed = s.buf.DeleteWord()

		case evHistoryPrev:
			changed = s.historyMove(1)
		case evHistoryNext:
			changed = s.historyMove(-1)

		case evClearScreen:
			if err := clearScreen(s.out); err != nil {
				return "", err
			}
			s.maxRows = 0
			s.oldPosWidth = 0
			changed = true
		}

		if changed {
			if err := s.refresh(); err != nil {
				return "", err
			}
		}
	}
}

// historyMove steps the browsing cursor; dir is +1 toward older entries,
// -1 toward newer. The slot being left records the current buffer so the
// edit survives a round trip, and the destination entry replaces the
// buffer content.
func (s *session) historyMove(dir int) bool {
	n := s.history.Len()
	if n <= 1 {
		// Only the scratch entry exists.
		return false
	}
	idx := s.histIdx + dir
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	if idx == s.histIdx {
		return false
	}
	s.history.set(s.histIdx, s.buf.String())
	s.histIdx = idx
	s.buf.Set(s.history.get(idx))
	return true
}

// completeLine runs the Tab browsing sub-mode. Tab cycles through the
// candidates with wraparound, Escape restores the original line, and any
// other byte commits the shown candidate and is pushed back into the
// decoder so it still acts on the line afterward.
func (s *session) completeLine() error {
	candidates := s.completer(s.buf.String())
	if len(candidates) == 0 {
		beep(s.out)
		return nil
	}

	saved := s.buf.String()
	savedPos := s.buf.Pos()
	idx := 0
	for {
		s.buf.Set(candidates[idx])
		if err := s.refresh(); err != nil {
			return err
		}

		b, err := s.in.readByte()
		if err == io.EOF {
			// Leave the committed candidate in place; the main loop will
			// observe end of input on its next read.
			return nil
		}
		if err != nil {
			return err
		}

		switch b {
		case keyTab:
			idx = (idx + 1) % len(candidates)
		case keyEsc:
			s.buf.Set(saved)
			s.buf.pos = savedPos
			return s.refresh()
		default:
			s.in.unread(b)
			return nil
		}
	}
}

// refreshWithoutHint redraws once with hints suppressed, leaving the line
// on screen exactly as the user typed it.
func (s *session) refreshWithoutHint() error {
	hinter := s.hinter
	s.hinter = nil
	err := s.refresh()
	s.hinter = hinter
	return err
}
