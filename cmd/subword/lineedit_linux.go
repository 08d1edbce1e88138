//go:build linux

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// lineEditor reads one line at a time. On a terminal it switches stdin to
// non-canonical mode and handles cursor movement and history itself.
type lineEditor struct {
	prompt  string
	history []string
	in      *bufio.Reader
}

func newLineEditor(prompt string) *lineEditor {
	return &lineEditor{prompt: prompt, in: bufio.NewReader(os.Stdin)}
}

func (le *lineEditor) ReadLine() (string, error) {
	if !stdinIsTTY() {
		return readPlainLine(le.in)
	}

	fd := int(os.Stdin.Fd())
	saved, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return "", err
	}
	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, saved)
	}()

	st := editState{prompt: le.prompt, histPos: len(le.history)}
	fmt.Print(le.prompt)
	for {
		b, err := le.in.ReadByte()
		if err != nil {
			return "", err
		}
		done, err := st.feed(b, le.history)
		if err != nil {
			return "", err
		}
		if done {
			out := string(st.line)
			if strings.TrimSpace(out) != "" {
				le.history = append(le.history, out)
			}
			return out, nil
		}
	}
}

type editState struct {
	prompt  string
	line    []rune
	cursor  int
	esc     int
	csi     strings.Builder
	utf     []byte
	histPos int
	draft   string
}

// feed consumes one input byte. It reports true when the line is complete
// and io.EOF on Ctrl+C, or on Ctrl+D at an empty prompt.
func (st *editState) feed(b byte, history []string) (bool, error) {
	switch st.esc {
	case 1:
		st.esc = 0
		if b == '[' {
			st.esc = 2
			st.csi.Reset()
		}
		return false, nil
	case 2:
		st.csi.WriteByte(b)
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			st.esc = 0
			st.handleCSI(st.csi.String(), history)
		}
		return false, nil
	}

	switch b {
	case 27:
		st.esc = 1
	case '\r', '\n':
		fmt.Print("\r\n")
		return true, nil
	case 3:
		fmt.Print("^C\r\n")
		return false, io.EOF
	case 4:
		if len(st.line) == 0 {
			fmt.Print("\r\n")
			return false, io.EOF
		}
	case 127, 8:
		if st.cursor > 0 {
			st.line = append(st.line[:st.cursor-1], st.line[st.cursor:]...)
			st.cursor--
			st.redraw()
		}
	case 1: // Ctrl+A
		st.cursor = 0
		st.redraw()
	case 5: // Ctrl+E
		st.cursor = len(st.line)
		st.redraw()
	case 21: // Ctrl+U
		st.line = st.line[:0]
		st.cursor = 0
		st.redraw()
	default:
		if b < 32 {
			return false, nil
		}
		// Collect multi-byte runes before inserting them.
		st.utf = append(st.utf, b)
		r, ok := decodeRune(st.utf)
		if !ok {
			return false, nil
		}
		st.utf = st.utf[:0]
		st.line = append(st.line, 0)
		copy(st.line[st.cursor+1:], st.line[st.cursor:])
		st.line[st.cursor] = r
		st.cursor++
		st.redraw()
	}
	return false, nil
}

func (st *editState) handleCSI(seq string, history []string) {
	switch seq {
	case "A":
		if len(history) == 0 || st.histPos == 0 {
			return
		}
		if st.histPos == len(history) {
			st.draft = string(st.line)
		}
		st.histPos--
		st.setLine(history[st.histPos])
	case "B":
		if st.histPos >= len(history) {
			return
		}
		st.histPos++
		if st.histPos == len(history) {
			st.setLine(st.draft)
		} else {
			st.setLine(history[st.histPos])
		}
	case "D":
		if st.cursor > 0 {
			st.cursor--
			st.redraw()
		}
	case "C":
		if st.cursor < len(st.line) {
			st.cursor++
			st.redraw()
		}
	case "H":
		st.cursor = 0
		st.redraw()
	case "F":
		st.cursor = len(st.line)
		st.redraw()
	case "3~":
		if st.cursor < len(st.line) {
			st.line = append(st.line[:st.cursor], st.line[st.cursor+1:]...)
			st.redraw()
		}
	}
}

func (st *editState) setLine(s string) {
	st.line = []rune(s)
	st.cursor = len(st.line)
	st.redraw()
}

func (st *editState) redraw() {
	fmt.Printf("\r%s%s\x1b[K", st.prompt, string(st.line))
	if st.cursor < len(st.line) {
		fmt.Printf("\r%s%s", st.prompt, string(st.line[:st.cursor]))
	}
}
