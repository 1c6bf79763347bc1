package linnet

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// refresh recomputes the terminal width and redraws prompt, buffer and hint
// for the current session state. Every state-changing event is followed by
// exactly one refresh.
func (s *session) refresh() error {
	if s.columns != nil {
		// A failed width query keeps the previous width.
		if w := s.columns(); w > 0 {
			s.cols = w
		}
	}
	if s.cols <= 0 {
		s.cols = defaultColumns
	}
	if s.multiline {
		return s.refreshMultiline()
	}
	return s.refreshSingleline()
}

// display returns the rendered form of the buffer as runes, plus the rune
// index of the cursor. In mask mode every code point renders as the mask
// rune.
func (s *session) display() ([]rune, int) {
	cur := s.buf.RunePos()
	if s.mask != 0 {
		masked := make([]rune, s.buf.RuneCount())
		for i := range masked {
			masked[i] = s.mask
		}
		return masked, cur
	}
	return []rune(s.buf.String()), cur
}

// refreshSingleline redraws the line in place. When the content is wider
// than the terminal, the visible window scrolls so the cursor stays on
// screen; the stored buffer is never truncated.
func (s *session) refreshSingleline() error {
	runes, cur := s.display()
	start, end := 0, len(runes)

	// Trim the left edge until the cursor column fits.
	posWidth := runeSliceWidth(runes[start:cur])
	for start < cur && s.promptWidth+posWidth >= s.cols {
		start++
		posWidth = runeSliceWidth(runes[start:cur])
	}
	// Trim the right edge so the row never overflows.
	for end > start && s.promptWidth+runeSliceWidth(runes[start:end]) >= s.cols {
		end--
	}

	var seq strings.Builder
	seq.WriteString("\r")
	seq.WriteString(s.prompt)
	seq.WriteString(string(runes[start:end]))
	seq.WriteString(s.hintSeq(s.promptWidth + runeSliceWidth(runes[start:end])))
	seq.WriteString("\x1b[0K")
	fmt.Fprintf(&seq, "\r\x1b[%dC", s.promptWidth+posWidth)

	_, err := io.WriteString(s.out, seq.String())
	return err
}

// refreshMultiline redraws wrapped content. It tracks how many rows the
// previous refresh used and clears them from the bottom up before
// redrawing, then repositions the cursor to its logical row and column.
// Without the row accounting a shrinking buffer would leave stale rows
// behind.
func (s *session) refreshMultiline() error {
	runes, cur := s.display()
	bufWidth := runeSliceWidth(runes)
	posWidth := runeSliceWidth(runes[:cur])
	oldRows := s.maxRows

	// Row the cursor ended on after the previous refresh, 1-based.
	oldRow := (s.promptWidth + s.oldPosWidth + s.cols) / s.cols
	rows := (s.promptWidth + bufWidth + s.cols - 1) / s.cols
	if rows > s.maxRows {
		s.maxRows = rows
	}

	var seq strings.Builder
	// Go down to the last row drawn previously, then clear rows upward.
	if oldRows-oldRow > 0 {
		fmt.Fprintf(&seq, "\x1b[%dB", oldRows-oldRow)
	}
	for j := 0; j < oldRows-1; j++ {
		seq.WriteString("\r\x1b[0K\x1b[1A")
	}
	seq.WriteString("\r\x1b[0K")

	seq.WriteString(s.prompt)
	seq.WriteString(string(runes))
	seq.WriteString(s.hintSeq(s.promptWidth + bufWidth))

	// A cursor landing exactly on a row boundary at end of buffer needs a
	// fresh row of its own.
	if posWidth != 0 && posWidth == bufWidth && (s.promptWidth+posWidth)%s.cols == 0 {
		seq.WriteString("\n\r")
		rows++
		if rows > s.maxRows {
			s.maxRows = rows
		}
	}

	// Reposition to the cursor's logical row and column.
	cursorRow := (s.promptWidth + posWidth + s.cols) / s.cols
	if rows-cursorRow > 0 {
		fmt.Fprintf(&seq, "\x1b[%dA", rows-cursorRow)
	}
	if col := (s.promptWidth + posWidth) % s.cols; col != 0 {
		fmt.Fprintf(&seq, "\r\x1b[%dC", col)
	} else {
		seq.WriteString("\r")
	}
	s.oldPosWidth = posWidth

	_, err := io.WriteString(s.out, seq.String())
	return err
}

// hintSeq asks the hinter for an inline hint and returns the styled byte
// sequence for it, trimmed to the columns remaining after used. Hints are
// suppressed in mask mode.
func (s *session) hintSeq(used int) string {
	if s.hinter == nil || s.mask != 0 {
		return ""
	}
	avail := s.cols - used
	if avail <= 0 {
		return ""
	}
	h := s.hinter(s.buf.String())
	if h == nil || h.Text == "" {
		return ""
	}
	text := h.Text
	for runewidth.StringWidth(text) > avail {
		_, n := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-n]
	}
	color := h.Color
	if color < 0 {
		color = 90 // default hints to grey
	}
	bold := 0
	if h.Bold {
		bold = 1
	}
	return fmt.Sprintf("\x1b[%d;%d;49m%s\x1b[0m", bold, color, text)
}

func runeSliceWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		w += runewidth.RuneWidth(r)
	}
	return w
}
