//go:build !linux

package main

import (
	"bufio"
	"fmt"
	"os"
)

type lineEditor struct {
	prompt string
	in     *bufio.Reader
}

func newLineEditor(prompt string) *lineEditor {
	return &lineEditor{prompt: prompt, in: bufio.NewReader(os.Stdin)}
}

func (le *lineEditor) ReadLine() (string, error) {
	if stdinIsTTY() {
		fmt.Print(le.prompt)
	}
	return readPlainLine(le.in)
}
