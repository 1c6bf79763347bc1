package linnet

import (
	"unicode"
	"unicode/utf8"
)

// Insert splices text at the cursor and advances the cursor past it. The
// caller supplies a complete UTF-8 encoding; Insert never splits a code
// point because the cursor only ever rests on a boundary.
func (b *LineBuffer) Insert(text []byte) {
	if len(text) == 0 {
		return
	}
	b.text = append(b.text, text...)
	copy(b.text[b.pos+len(text):], b.text[b.pos:])
	copy(b.text[b.pos:], text)
	b.pos += len(text)
}

// InsertRune inserts a single code point at the cursor.
func (b *LineBuffer) InsertRune(r rune) {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	b.Insert(tmp[:n])
}

// Backspace removes the code point before the cursor. At the start of the
// line it is a no-op.
func (b *LineBuffer) Backspace() bool {
	if b.pos == 0 {
		return false
	}
	_, n := utf8.DecodeLastRune(b.text[:b.pos])
	b.text = append(b.text[:b.pos-n], b.text[b.pos:]...)
	b.pos -= n
	return true
}

// DeleteChar removes the code point under the cursor. At the end of the
// line it is a no-op; the cursor does not move.
func (b *LineBuffer) DeleteChar() bool {
	if b.pos >= len(b.text) {
		return false
	}
	_, n := utf8.DecodeRune(b.text[b.pos:])
	b.text = append(b.text[:b.pos], b.text[b.pos+n:]...)
	return true
}

// KillToEnd removes everything from the cursor to the end of the line. The
// removed text is discarded; there is no kill ring.
func (b *LineBuffer) KillToEnd() bool {
	if b.pos == len(b.text) {
		return false
	}
	b.text = b.text[:b.pos]
	return true
}

// KillToStart removes everything before the cursor.
func (b *LineBuffer) KillToStart() bool {
	if b.pos == 0 {
		return false
	}
	n := copy(b.text, b.text[b.pos:])
	b.text = b.text[:n]
	b.pos = 0
	return true
}

// DeleteWord removes the span a backward word motion would skip: trailing
// whitespace, then the word before the cursor.
func (b *LineBuffer) DeleteWord() bool {
	i := b.prevWordStart()
	if i == b.pos {
		return false
	}
	b.text = append(b.text[:i], b.text[b.pos:]...)
	b.pos = i
	return true
}

// Transpose swaps the two code points before the cursor and steps the
// cursor forward by one. With fewer than two code points before the cursor
// it is a no-op.
func (b *LineBuffer) Transpose() bool {
	if b.pos == 0 {
		return false
	}
	r1, n1 := utf8.DecodeLastRune(b.text[:b.pos])
	if n1 == b.pos {
		return false
	}
	r0, n0 := utf8.DecodeLastRune(b.text[:b.pos-n1])
	if n0 == 0 {
		return false
	}
	var tmp [2 * utf8.UTFMax]byte
	m := utf8.EncodeRune(tmp[:], r1)
	m += utf8.EncodeRune(tmp[m:], r0)
	copy(b.text[b.pos-n0-n1:], tmp[:m])
	b.MoveRight()
	return true
}

// prevWordStart returns the byte offset a backward word motion stops at.
func (b *LineBuffer) prevWordStart() int {
	i := b.pos
	for i > 0 {
		r, n := utf8.DecodeLastRune(b.text[:i])
		if !unicode.IsSpace(r) {
			break
		}
		i -= n
	}
	for i > 0 {
		r, n := utf8.DecodeLastRune(b.text[:i])
		if unicode.IsSpace(r) {
			break
		}
		i -= n
	}
	return i
}

// nextWordEnd returns the byte offset a forward word motion stops at.
func (b *LineBuffer) nextWordEnd() int {
	i := b.pos
	for i < len(b.text) {
		r, n := utf8.DecodeRune(b.text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += n
	}
	for i < len(b.text) {
		r, n := utf8.DecodeRune(b.text[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += n
	}
	return i
}
