package linnet

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Default number of retained history entries.
const defaultHistoryLimit = 128

// History is an ordered sequence of past lines, oldest first. A session
// browses it through a cursor counted backward from the newest entry; the
// newest slot is a scratch entry holding the in-progress edit while a
// session is active.
//
// A History must not be shared by concurrent sessions.
type History struct {
	entries []string
	limit   int
}

func newHistory(limit int) *History {
	return &History{limit: limit}
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Add appends a line. Consecutive duplicates are suppressed and the oldest
// entry is evicted once the capacity limit is reached. It reports whether
// the line was added.
func (h *History) Add(line string) bool {
	if h.limit <= 0 {
		return false
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return false
	}
	if len(h.entries) >= h.limit {
		n := copy(h.entries, h.entries[len(h.entries)-h.limit+1:])
		h.entries = h.entries[:n]
	}
	h.entries = append(h.entries, line)
	return true
}

// push appends a scratch entry, bypassing duplicate suppression and the
// capacity limit. Sessions use it for the in-progress edit slot.
func (h *History) push(line string) {
	h.entries = append(h.entries, line)
}

// pop removes the newest entry.
func (h *History) pop() {
	if n := len(h.entries); n > 0 {
		h.entries = h.entries[:n-1]
	}
}

// get returns the entry idx steps back from the newest; idx 0 is the
// newest entry.
func (h *History) get(idx int) string {
	return h.entries[len(h.entries)-1-idx]
}

// set overwrites the entry idx steps back from the newest.
func (h *History) set(idx int, line string) {
	h.entries[len(h.entries)-1-idx] = line
}

// Load replaces the history with the contents of the file at path, one
// entry per line. Blank lines are dropped and the capacity limit applies.
func (h *History) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	h.entries = h.entries[:0]
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		h.Add(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}
	return nil
}

// Save writes the history to the file at path, one entry per line. The
// file is created with mode 0600 since history may contain sensitive input.
func (h *History) Save(path string) error {
	var sb strings.Builder
	for _, e := range h.entries {
		sb.WriteString(e)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
