package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// lineSource yields input lines one at a time.
type lineSource interface {
	ReadLine(ctx context.Context) (string, error)
}

// lineReader reads lines on demand from a background goroutine so a read
// can be abandoned when ctx is done. The goroutine only scans after a line
// was requested, which leaves the terminal free for password prompts.
type lineReader struct {
	sc   *bufio.Scanner
	req  chan struct{}
	out  chan string
	done chan struct{}
	once sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		sc:   bufio.NewScanner(r),
		req:  make(chan struct{}),
		out:  make(chan string),
		done: make(chan struct{}),
	}
}

func (l *lineReader) pump() {
	defer close(l.done)
	for range l.req {
		if !l.sc.Scan() {
			return
		}
		l.out <- l.sc.Text()
	}
}

// ReadLine returns the next line without its newline, io.EOF once the
// input is exhausted or ctx.Err() when ctx is done first.
func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.once.Do(func() { go l.pump() })

	select {
	case l.req <- struct{}{}:
	case line := <-l.out:
		// left over from a read abandoned earlier
		return line, nil
	case <-l.done:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case line := <-l.out:
		return line, nil
	case <-l.done:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// GetSimpleText prints a prompt to w and reads a single trimmed line.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(ctx context.Context, in lineSource, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := in.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a secret from the user's
// terminal without echo. A newline is printed after the read to keep the
// UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// readSecret uses the terminal when stdin is one and falls back to a plain
// line otherwise, so piped input works.
func readSecret(ctx context.Context, in lineSource, prompt string, w io.Writer) ([]byte, error) {
	if isTerminal(int(os.Stdin.Fd())) {
		return GetPassword(w, prompt)
	}
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	line, err := in.ReadLine(ctx)
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(line)), nil
}
