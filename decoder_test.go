package linnet

import (
	"io"
	"strings"
	"testing"
)

// collectEvents drains the decoder until end of input.
func collectEvents(t *testing.T, input string) []event {
	t.Helper()
	d := newDecoder(strings.NewReader(input))
	var events []event
	for {
		ev, err := d.next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if ev.kind == evEndOfInput {
			return events
		}
		events = append(events, ev)
	}
}

func TestDecoder_ControlKeys(t *testing.T) {
	cases := []struct {
		b    byte
		want eventKind
	}{
		{keyCtrlA, evMoveHome},
		{keyCtrlB, evMoveLeft},
		{keyCtrlC, evInterrupt},
		{keyCtrlD, evDeleteOrEOF},
		{keyCtrlE, evMoveEnd},
		{keyCtrlF, evMoveRight},
		{keyCtrlH, evBackspace},
		{keyBackspace, evBackspace},
		{keyTab, evComplete},
		{keyCtrlK, evKillToEnd},
		{keyCtrlL, evClearScreen},
		{keyEnter, evAccept},
		{keyLineFeed, evAccept},
		{keyCtrlN, evHistoryNext},
		{keyCtrlP, evHistoryPrev},
		{keyCtrlT, evTranspose},
		{keyCtrlU, evKillToStart},
		{keyCtrlW, evDeleteWord},
	}
	for _, tc := range cases {
		events := collectEvents(t, string([]byte{tc.b}))
		if len(events) != 1 || events[0].kind != tc.want {
			t.Fatalf("byte 0x%02x: events=%v, want one event of kind %d", tc.b, events, tc.want)
		}
	}
}

func TestDecoder_CSIKeys(t *testing.T) {
	cases := []struct {
		seq  string
		want eventKind
	}{
		{"\x1b[A", evHistoryPrev},
		{"\x1b[B", evHistoryNext},
		{"\x1b[C", evMoveRight},
		{"\x1b[D", evMoveLeft},
		{"\x1b[H", evMoveHome},
		{"\x1b[F", evMoveEnd},
		{"\x1b[1~", evMoveHome},
		{"\x1b[3~", evDeleteChar},
		{"\x1b[4~", evMoveEnd},
		{"\x1b[7~", evMoveHome},
		{"\x1b[8~", evMoveEnd},
		{"\x1b0H", evMoveHome},
		{"\x1b0F", evMoveEnd},
	}
	for _, tc := range cases {
		events := collectEvents(t, tc.seq)
		if len(events) != 1 || events[0].kind != tc.want {
			t.Fatalf("seq %q: events=%v, want one event of kind %d", tc.seq, events, tc.want)
		}
	}
}

func TestDecoder_UTF8Assembly(t *testing.T) {
	const text = "héllo 世界 🙂"
	events := collectEvents(t, text)
	var got strings.Builder
	for _, ev := range events {
		if ev.kind != evInsert {
			t.Fatalf("unexpected event kind %d", ev.kind)
		}
		got.Write(ev.text)
	}
	// Assembling one byte at a time must equal decoding the whole string.
	if got.String() != text {
		t.Fatalf("assembled %q, want %q", got.String(), text)
	}
}

func TestDecoder_UnknownTildeCodeIgnored(t *testing.T) {
	// ESC [ 5 ~ (PageUp) is accepted but unmapped; the following byte must
	// decode normally.
	events := collectEvents(t, "\x1b[5~x")
	if len(events) != 2 {
		t.Fatalf("events=%v, want ignored sequence then insert", events)
	}
	if events[0].kind != evNone || events[1].kind != evInsert || string(events[1].text) != "x" {
		t.Fatalf("events=%v, want [evNone, insert x]", events)
	}
}

func TestDecoder_TwoDigitCSIDiscardsOneByte(t *testing.T) {
	// Two-digit parameters are unimplemented: the decoder reads exactly one
	// byte past the second digit (here '~') and drops the sequence.
	events := collectEvents(t, "\x1b[20~x")
	if len(events) != 2 {
		t.Fatalf("events=%v, want ignored sequence then insert", events)
	}
	if events[0].kind != evNone || string(events[1].text) != "x" {
		t.Fatalf("events=%v, want [evNone, insert x]", events)
	}
}

func TestDecoder_UnknownEscapeTailsIgnored(t *testing.T) {
	for _, input := range []string{"\x1bZx", "\x1b[Zx", "\x1b0Qx"} {
		events := collectEvents(t, input)
		if len(events) != 2 || events[0].kind != evNone ||
			events[1].kind != evInsert || string(events[1].text) != "x" {
			t.Fatalf("input %q: events=%v, want [evNone, insert x]", input, events)
		}
	}
}

func TestDecoder_InvalidLeadByteSkipped(t *testing.T) {
	// A stray continuation byte and an impossible lead byte must not wedge
	// the decoder.
	events := collectEvents(t, "\x80\xfea")
	if len(events) != 3 {
		t.Fatalf("events=%v, want two no-ops then insert", events)
	}
	if events[0].kind != evNone || events[1].kind != evNone || string(events[2].text) != "a" {
		t.Fatalf("events=%v, want [evNone, evNone, insert a]", events)
	}
}

func TestDecoder_EOFMidSequence(t *testing.T) {
	for _, input := range []string{"", "\x1b", "\x1b[", "\x1b[2", "\xe4\xb8"} {
		d := newDecoder(strings.NewReader(input))
		for {
			ev, err := d.next()
			if err != nil {
				t.Fatalf("input %q: next: %v", input, err)
			}
			if ev.kind == evEndOfInput {
				break
			}
			if ev.kind != evNone {
				t.Fatalf("input %q: unexpected event kind %d", input, ev.kind)
			}
		}
	}
}

func TestDecoder_ZeroByteReadIsEOF(t *testing.T) {
	d := newDecoder(zeroReader{})
	ev, err := d.next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if ev.kind != evEndOfInput {
		t.Fatalf("kind=%d, want evEndOfInput", ev.kind)
	}
}

// zeroReader models a descriptor that yields zero bytes without an error.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) { return 0, nil }

func TestDecoder_ReadErrorPropagates(t *testing.T) {
	d := newDecoder(errReader{})
	if _, err := d.next(); err == nil {
		t.Fatal("next: expected error")
	}
}

type errReader struct{}

func (errReader) Read(p []byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestDecoder_Unread(t *testing.T) {
	d := newDecoder(strings.NewReader("b"))
	d.unread('a')
	ev, err := d.next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if ev.kind != evInsert || string(ev.text) != "a" {
		t.Fatalf("event=%v, want insert a", ev)
	}
	ev, err = d.next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if ev.kind != evInsert || string(ev.text) != "b" {
		t.Fatalf("event=%v, want insert b", ev)
	}
}
