package linnet

import (
	"unicode/utf8"
)

// LineBuffer is the editable line: an owned, growable byte sequence plus a
// cursor offset. The cursor is a byte index and always falls on a UTF-8
// code point boundary.
type LineBuffer struct {
	text []byte
	pos  int
}

// String returns the current line content.
func (b *LineBuffer) String() string {
	return string(b.text)
}

// Bytes returns the underlying bytes. The slice is only valid until the
// next mutating operation.
func (b *LineBuffer) Bytes() []byte {
	return b.text
}

// Len returns the line length in bytes.
func (b *LineBuffer) Len() int {
	return len(b.text)
}

// Pos returns the cursor offset in bytes.
func (b *LineBuffer) Pos() int {
	return b.pos
}

// RuneCount returns the number of code points in the line.
func (b *LineBuffer) RuneCount() int {
	return utf8.RuneCount(b.text)
}

// RunePos returns the number of code points before the cursor.
func (b *LineBuffer) RunePos() int {
	return utf8.RuneCount(b.text[:b.pos])
}

// Set replaces the whole line and leaves the cursor at the end. History
// recall and completion previews load entries through Set.
func (b *LineBuffer) Set(s string) {
	b.text = append(b.text[:0], s...)
	b.pos = len(b.text)
}

// MoveLeft shifts the cursor one code point left.
func (b *LineBuffer) MoveLeft() bool {
	if b.pos == 0 {
		return false
	}
	_, n := utf8.DecodeLastRune(b.text[:b.pos])
	b.pos -= n
	return true
}

// MoveRight shifts the cursor one code point right.
func (b *LineBuffer) MoveRight() bool {
	if b.pos >= len(b.text) {
		return false
	}
	_, n := utf8.DecodeRune(b.text[b.pos:])
	b.pos += n
	return true
}

// MoveHome places the cursor at the start of the line.
func (b *LineBuffer) MoveHome() bool {
	if b.pos == 0 {
		return false
	}
	b.pos = 0
	return true
}

// MoveEnd places the cursor past the last code point.
func (b *LineBuffer) MoveEnd() bool {
	if b.pos == len(b.text) {
		return false
	}
	b.pos = len(b.text)
	return true
}

// MoveWordLeft moves the cursor to the start of the previous word: it skips
// whitespace, then a contiguous non-whitespace run.
func (b *LineBuffer) MoveWordLeft() bool {
	i := b.prevWordStart()
	if i == b.pos {
		return false
	}
	b.pos = i
	return true
}

// MoveWordRight moves the cursor past the end of the next word.
func (b *LineBuffer) MoveWordRight() bool {
	i := b.nextWordEnd()
	if i == b.pos {
		return false
	}
	b.pos = i
	return true
}
