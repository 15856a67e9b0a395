// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers line by line. Secrets are read without echo when
// the input is a terminal.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{reader: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

func (p *prompter) readLine() (string, error) {
	input, err := p.reader.ReadString('\n')
	if err != nil {
		// Accept a final line without a trailing newline.
		if errors.Is(err, io.EOF) && input != "" {
			return input, nil
		}
		return "", err
	}
	return input, nil
}

// Ask prints label, showing def when set, and returns the trimmed answer or def.
func (p *prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s %s: ", label, dimColor.Sprintf("[%s]", def))
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	input, err := p.readLine()
	if err != nil {
		return "", err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return def, nil
	}
	return input, nil
}

// Secret reads a value without trimming anything but the line ending.
func (p *prompter) Secret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	// ReadPassword reads the descriptor directly, so a line already pulled
	// into the buffer (pasted together with earlier answers) is taken from
	// the buffer instead of being lost.
	if p.tty && p.reader.Buffered() == 0 {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	input, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}
