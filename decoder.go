package linnet

import "io"

// Control bytes recognized by the decoder. Ctrl+letter is letter - 0x60.
const (
	keyCtrlA     = 0x01
	keyCtrlB     = 0x02
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyCtrlE     = 0x05
	keyCtrlF     = 0x06
	keyCtrlH     = 0x08
	keyTab       = 0x09
	keyLineFeed  = 0x0a
	keyCtrlK     = 0x0b
	keyCtrlL     = 0x0c
	keyEnter     = 0x0d
	keyCtrlN     = 0x0e
	keyCtrlP     = 0x10
	keyCtrlT     = 0x14
	keyCtrlU     = 0x15
	keyCtrlW     = 0x17
	keyEsc       = 0x1b
	keyBackspace = 0x7f
)

// eventKind classifies one logical input decoded from the raw byte stream.
type eventKind int

const (
	evNone eventKind = iota // nothing to do (ignored byte or escape tail)
	evInsert
	evAccept
	evInterrupt
	evEndOfInput
	evDeleteOrEOF // Ctrl-D: delete forward, or end of input on an empty buffer
	evBackspace
	evDeleteChar
	evMoveLeft
	evMoveRight
	evMoveHome
	evMoveEnd
	evKillToEnd
	evKillToStart
	evTranspose
	evDeleteWord
	evHistoryPrev
	evHistoryNext
	evClearScreen
	evComplete
)

// event is one decoded logical input. text is set only for evInsert and
// holds the complete UTF-8 encoding of a single code point.
type event struct {
	kind eventKind
	text []byte
}

// decoder turns the raw byte stream into logical edit events. It reads one
// byte at a time so that decoding cannot depend on how the input happens to
// be chunked, and it never carries partial-sequence state between calls:
// every next() call either consumes a complete sequence or abandons an
// unrecognized one.
type decoder struct {
	r       io.Reader
	pushed  byte
	hasPush bool
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{r: r}
}

// readByte reads the next single byte. A read that yields zero bytes is
// reported as io.EOF so a closed descriptor cannot wedge the session.
func (d *decoder) readByte() (byte, error) {
	if d.hasPush {
		d.hasPush = false
		return d.pushed, nil
	}
	var b [1]byte
	n, err := d.r.Read(b[:])
	if n > 0 {
		return b[0], nil
	}
	if err != nil {
		return 0, err
	}
	return 0, io.EOF
}

// unread pushes one byte back so the next readByte returns it. The
// completion sub-mode uses this to hand its terminating key back to the
// main dispatch loop.
func (d *decoder) unread(b byte) {
	d.pushed = b
	d.hasPush = true
}

// next blocks for the next logical event. I/O failures other than end of
// input are returned as errors; end of input at any decode position yields
// evEndOfInput.
func (d *decoder) next() (event, error) {
	b, err := d.readByte()
	if err != nil {
		return d.eofOr(err)
	}

	switch b {
	case 0x00:
		return event{kind: evNone}, nil
	case keyCtrlA:
		return event{kind: evMoveHome}, nil
	case keyCtrlB:
		return event{kind: evMoveLeft}, nil
	case keyCtrlC:
		return event{kind: evInterrupt}, nil
	case keyCtrlD:
		return event{kind: evDeleteOrEOF}, nil
	case keyCtrlE:
		return event{kind: evMoveEnd}, nil
	case keyCtrlF:
		return event{kind: evMoveRight}, nil
	case keyCtrlH, keyBackspace:
		return event{kind: evBackspace}, nil
	case keyTab:
		return event{kind: evComplete}, nil
	case keyCtrlK:
		return event{kind: evKillToEnd}, nil
	case keyCtrlL:
		return event{kind: evClearScreen}, nil
	case keyEnter, keyLineFeed:
		return event{kind: evAccept}, nil
	case keyCtrlN:
		return event{kind: evHistoryNext}, nil
	case keyCtrlP:
		return event{kind: evHistoryPrev}, nil
	case keyCtrlT:
		return event{kind: evTranspose}, nil
	case keyCtrlU:
		return event{kind: evKillToStart}, nil
	case keyCtrlW:
		return event{kind: evDeleteWord}, nil
	case keyEsc:
		return d.decodeEscape()
	}
	return d.decodeInsert(b)
}

// decodeEscape handles the byte after ESC: '[' begins a CSI sequence, '0' is
// the legacy Home/End form some terminals emit, anything else is silently
// ignored.
func (d *decoder) decodeEscape() (event, error) {
	b, err := d.readByte()
	if err != nil {
		return d.eofOr(err)
	}
	switch b {
	case '[':
		return d.decodeBracket()
	case '0':
		c, err := d.readByte()
		if err != nil {
			return d.eofOr(err)
		}
		switch c {
		case 'H':
			return event{kind: evMoveHome}, nil
		case 'F':
			return event{kind: evMoveEnd}, nil
		}
	}
	return event{kind: evNone}, nil
}

// decodeBracket handles the byte after ESC [.
func (d *decoder) decodeBracket() (event, error) {
	b, err := d.readByte()
	if err != nil {
		return d.eofOr(err)
	}
	if b >= '0' && b <= '9' {
		return d.decodeParam(b)
	}
	switch b {
	case 'A':
		return event{kind: evHistoryPrev}, nil
	case 'B':
		return event{kind: evHistoryNext}, nil
	case 'C':
		return event{kind: evMoveRight}, nil
	case 'D':
		return event{kind: evMoveLeft}, nil
	case 'H':
		return event{kind: evMoveHome}, nil
	case 'F':
		return event{kind: evMoveEnd}, nil
	}
	return event{kind: evNone}, nil
}

// decodeParam handles tilde-terminated CSI forms such as ESC [ 3 ~.
func (d *decoder) decodeParam(digit byte) (event, error) {
	b, err := d.readByte()
	if err != nil {
		return d.eofOr(err)
	}
	if b == '~' {
		switch digit {
		case '1', '7':
			return event{kind: evMoveHome}, nil
		case '3':
			return event{kind: evDeleteChar}, nil
		case '4', '8':
			return event{kind: evMoveEnd}, nil
		}
		return event{kind: evNone}, nil
	}
	if b >= '0' && b <= '9' {
		// Two-digit parameters (PageUp, function keys, ...) are not
		// implemented. Swallow the byte that follows the second digit so
		// the stream stays in sync, then drop the sequence.
		// TODO: decode the full parameter and its terminator instead.
		if _, err := d.readByte(); err != nil {
			return d.eofOr(err)
		}
	}
	return event{kind: evNone}, nil
}

// decodeInsert assembles a UTF-8 sequence starting with lead byte b and
// returns it as one insertion event. A byte that is not a valid lead byte
// is skipped rather than surfaced, so stray bytes cannot corrupt the
// session.
func (d *decoder) decodeInsert(b byte) (event, error) {
	n := utf8SeqLen(b)
	if n == 0 {
		return event{kind: evNone}, nil
	}
	text := make([]byte, 1, n)
	text[0] = b
	for len(text) < n {
		c, err := d.readByte()
		if err != nil {
			return d.eofOr(err)
		}
		text = append(text, c)
	}
	return event{kind: evInsert, text: text}, nil
}

// eofOr maps end of input to an event and passes real I/O failures through.
func (d *decoder) eofOr(err error) (event, error) {
	if err == io.EOF {
		return event{kind: evEndOfInput}, nil
	}
	return event{}, err
}

// utf8SeqLen returns the sequence length implied by a UTF-8 lead byte, or 0
// if the byte cannot start a sequence.
func utf8SeqLen(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	}
	return 0
}
