package linnet

import (
	"bytes"
	"strings"
	"testing"
)

func renderSession(prompt string, cols int) (*session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	s := newSession(strings.NewReader(""), out, prompt)
	s.history = newHistory(8)
	s.columns = func() int { return cols }
	return s, out
}

func TestRefresh_SingleLineExactSequence(t *testing.T) {
	s, out := renderSession("> ", 80)
	s.buf.Set("hi")
	if err := s.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	// Carriage return, prompt+buffer, erase to end of line, reposition.
	want := "\r> hi\x1b[0K\r\x1b[4C"
	if got := out.String(); got != want {
		t.Fatalf("refresh wrote %q, want %q", got, want)
	}
}

func TestRefresh_SingleLineScrollsWindow(t *testing.T) {
	s, out := renderSession("> ", 10)
	s.buf.Set("abcdefghijklmno")
	if err := s.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "ijklmno") {
		t.Fatalf("visible window missing from %q", got)
	}
	if strings.Contains(got, "abc") {
		t.Fatalf("left-trimmed content still rendered in %q", got)
	}
}

func TestRefresh_SingleLineCursorMidWindow(t *testing.T) {
	s, out := renderSession("> ", 80)
	s.buf.Set("hello")
	s.buf.MoveHome()
	s.buf.MoveRight()
	if err := s.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := out.String(); !strings.HasSuffix(got, "\r\x1b[3C") {
		t.Fatalf("cursor reposition missing from %q", got)
	}
}

func TestRefresh_MaskModeHidesContent(t *testing.T) {
	s, out := renderSession("> ", 80)
	s.mask = '*'
	s.hinter = func(string) *Hint { return &Hint{Text: "leak"} }
	s.buf.Set("secret")
	if err := s.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "secret") {
		t.Fatalf("masked refresh leaked the buffer: %q", got)
	}
	if !strings.Contains(got, "******") {
		t.Fatalf("mask characters missing from %q", got)
	}
	if strings.Contains(got, "leak") {
		t.Fatalf("hints must be suppressed in mask mode: %q", got)
	}
}

func TestRefresh_HintStyledAndTrimmed(t *testing.T) {
	s, out := renderSession("> ", 10)
	s.hinter = func(line string) *Hint {
		return &Hint{Text: "abcdefghij", Color: -1}
	}
	s.buf.Set("ab")
	if err := s.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	got := out.String()
	// 10 columns minus prompt (2) and buffer (2) leaves 6 for the hint.
	if !strings.Contains(got, "\x1b[0;90;49mabcdef\x1b[0m") {
		t.Fatalf("styled hint missing from %q", got)
	}
	if strings.Contains(got, "abcdefg") {
		t.Fatalf("hint not trimmed to available width: %q", got)
	}
}

func TestRefresh_WideRunesUseDisplayWidth(t *testing.T) {
	s, out := renderSession("> ", 80)
	s.buf.Set("日本")
	if err := s.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	// Prompt is 2 columns, each ideograph another 2.
	if got := out.String(); !strings.HasSuffix(got, "\r\x1b[6C") {
		t.Fatalf("cursor reposition %q does not account for wide runes", got)
	}
}

func TestRefresh_MultilineClearsPreviousRows(t *testing.T) {
	s, out := renderSession("> ", 10)
	s.multiline = true
	s.buf.Set("abcdefghijklmnopqrstuvwxy") // 25 columns + prompt = 3 rows
	if err := s.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if s.maxRows != 3 {
		t.Fatalf("maxRows=%d, want 3", s.maxRows)
	}

	out.Reset()
	s.buf.KillToStart()
	if err := s.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	// The two rows above the last one are cleared on the way up.
	if got := strings.Count(out.String(), "\r\x1b[0K\x1b[1A"); got != 2 {
		t.Fatalf("cleared %d stale rows, want 2 (output %q)", got, out.String())
	}
}

func TestRefresh_WidthQueryFailureReusesPrevious(t *testing.T) {
	s, _ := renderSession("> ", 80)
	s.cols = 37
	s.columns = func() int { return 0 }
	s.buf.Set("x")
	if err := s.refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if s.cols != 37 {
		t.Fatalf("cols=%d, want previous width 37", s.cols)
	}
}
