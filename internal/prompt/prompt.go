// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt reads and validates interactive input: bounded integers,
// output file names, and yes/no confirmations. Every prompt honors context
// cancellation so an interrupt can end a session blocked on input.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

const notANumber = "Please enter a number."

type lineResult struct {
	text string
	err  error
}

// Prompter writes prompts to out and reads answers line by line from in.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	prefix string

	once  sync.Once
	lines chan lineResult
}

// New creates a Prompter. prefix is the marker printed before each prompt
// (for example "> ").
func New(in io.Reader, out io.Writer, prefix string) *Prompter {
	return &Prompter{in: in, out: out, prefix: prefix}
}

// Prefix returns the prompt marker.
func (p *Prompter) Prefix() string { return p.prefix }

// Out returns the writer prompts and messages go to.
func (p *Prompter) Out() io.Writer { return p.out }

// Println prints a message line to the prompt output.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf prints a formatted message to the prompt output.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// start launches the reader goroutine. Reads block the goroutine, not the
// caller, so Line can give up on a cancelled context.
func (p *Prompter) start() {
	p.lines = make(chan lineResult)
	go func() {
		r := bufio.NewReader(p.in)
		for {
			text, err := r.ReadString('\n')
			text = strings.TrimRight(text, "\r\n")
			if err != nil {
				if text != "" {
					p.lines <- lineResult{text: text}
				}
				p.lines <- lineResult{err: err}
				close(p.lines)
				return
			}
			p.lines <- lineResult{text: text}
		}
	}()
}

// Line writes prompt and returns the next input line without its line
// terminator. It returns io.EOF when input is exhausted and ctx.Err() when
// ctx is cancelled first.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	p.once.Do(p.start)
	fmt.Fprint(p.out, prompt)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf("reading input: %w", res.err)
		}
		return res.text, nil
	}
}

// Int prompts until the answer parses as an integer in [min, max]. Input
// that is not a number prints "Please enter a number."; a number out of
// range, including one too large for an int, prints errMsg. Only input errors and cancellation end the loop early.
func (p *Prompter) Int(ctx context.Context, prompt, errMsg string, min, max int) (int, error) {
	for {
		line, err := p.Line(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if errors.Is(err, strconv.ErrRange) {
			p.Println(errMsg)
			continue
		}
		if err != nil {
			p.Println(notANumber)
			continue
		}
		if n < min || n > max {
			p.Println(errMsg)
			continue
		}
		return n, nil
	}
}

// FileName reads one line, trims surrounding whitespace, and validates it
// with ValidateFileName. It makes a single pass: on failure it prints the
// reason and still returns the trimmed input with ok set to false. Callers
// wanting a usable name re-prompt until ok is true.
func (p *Prompter) FileName(ctx context.Context, prompt string, allowHidden bool) (name string, ok bool, err error) {
	line, err := p.Line(ctx, prompt)
	if err != nil {
		return "", false, err
	}
	name = strings.TrimSpace(line)
	if verr := ValidateFileName(name, allowHidden); verr != nil {
		p.Println(verr.Error())
		return name, false, nil
	}
	return name, true, nil
}

// Confirm asks a yes/no question. Only answers starting with y or Y count
// as yes; an empty answer is no.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	line, err := p.Line(ctx, prompt)
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(answer, "y"), nil
}
