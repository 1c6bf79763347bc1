// Package linnet is a raw-mode line-editing engine for terminal programs.
//
// It reads raw keystrokes from a terminal, maintains an editable text buffer
// with a cursor, and redraws the line as the user types, deletes, navigates,
// or recalls history - without relying on the terminal's own line editing,
// which is disabled while a read is in progress.
//
// # Features
//
//   - Emacs-style editing keys (Ctrl-A/E/B/F/K/U/W/T and friends)
//   - Arrow keys, Home/End and Delete via ANSI escape sequences
//   - UTF-8 input assembled byte by byte, wide runes rendered correctly
//   - History browsing with Up/Down, optional on-disk persistence
//   - Tab completion with in-place candidate cycling
//   - Inline hints drawn after the cursor
//   - Single-line scrolling or multiline wrapped rendering
//   - Mask mode for password entry
//   - Plain buffered reads when stdin is not an interactive terminal
//
// # Basic Usage
//
//	import "github.com/fernwick/linnet"
//
//	ed := linnet.New(linnet.Options{})
//	ed.SetCompleter(func(line string) []string {
//	    if strings.HasPrefix("help", line) {
//	        return []string{"help"}
//	    }
//	    return nil
//	})
//
//	for {
//	    line, err := ed.ReadLine("> ")
//	    if err == io.EOF || err == linnet.ErrInterrupted {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(line)
//	}
//
// # Architecture
//
// The package consists of a small set of cooperating components:
//
//   - decoder: classifies raw bytes into logical edit events, assembling
//     UTF-8 sequences and ANSI escape sequences one byte at a time
//   - LineBuffer: the editable byte sequence plus cursor offset
//   - History: ordered past entries with a browsing cursor
//   - session: the per-ReadLine dispatch loop tying input, buffer, history,
//     completion and rendering together
//   - Editor: the public entry point handling terminal capability detection,
//     raw-mode acquisition and release, and the non-terminal fallback
//
// Raw mode is entered once per ReadLine call and restored on every exit
// path, including errors and interrupts.
package linnet
