package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// termPrompter asks on a terminal. Alerts go to out, answers are read from in.
type termPrompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func newTermPrompter(in io.Reader, out io.Writer) *termPrompter {
	return &termPrompter{in: bufio.NewReader(in), out: out}
}

func (p *termPrompter) Alert(_ context.Context, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, message)
}

// Confirm accepts y or yes. EOF or anything else declines.
func (p *termPrompter) Confirm(_ context.Context, message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
