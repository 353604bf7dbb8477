// Package prompt supplies the operator input behind the selection protocol.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Modes accepted by New.
const (
	ModeAuto = "auto"
	ModeForm = "form"
	ModeLine = "line"
)

// Prompter asks one question and returns the raw answer.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}

// New returns the prompter for mode. Auto picks the form on a terminal
// and plain lines otherwise.
func New(mode string, in io.Reader, out io.Writer) (Prompter, error) {
	switch mode {
	case ModeLine:
		return NewLinePrompter(in, out), nil
	case ModeForm:
		return NewFormPrompter(in, out), nil
	case ModeAuto, "":
		if isTerminal(in) {
			return NewFormPrompter(in, out), nil
		}
		return NewLinePrompter(in, out), nil
	default:
		return nil, fmt.Errorf("unknown prompt mode %q", mode)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// LinePrompter writes the question and reads one line.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer

	// pending is the read still outstanding from a cancelled Ask.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask returns io.EOF once input is exhausted. A final line without a
// newline is still returned. Cancelling ctx returns at once; a line typed
// afterwards goes to the next Ask.
func (p *LinePrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, question) //nolint:errcheck
	if p.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		p.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.pending:
		p.pending = nil
		if r.err != nil && (!errors.Is(r.err, io.EOF) || r.line == "") {
			return "", r.err
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

// FormPrompter asks through a huh input field.
type FormPrompter struct {
	in    io.Reader
	lines *lineReader
	out   io.Writer
	tty   bool
}

// NewFormPrompter creates a FormPrompter. Off a terminal the form runs in
// accessible mode over a reader shared by every Ask.
func NewFormPrompter(in io.Reader, out io.Writer) *FormPrompter {
	return &FormPrompter{
		in:    in,
		lines: &lineReader{r: bufio.NewReader(in)},
		out:   out,
		tty:   isTerminal(in),
	}
}

// Ask runs a single-field form. Aborting the form or running out of input
// closes the prompt.
func (p *FormPrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var answer string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(strings.TrimSpace(question)).
				Value(&answer),
		),
	).
		WithOutput(p.out).
		WithShowHelp(false)

	if p.tty {
		if err := form.WithInput(p.in).RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return "", io.EOF
			}
			return "", err
		}
		return answer, nil
	}

	// Accessible mode scans input without watching ctx.
	done := make(chan error, 1)
	go func() {
		done <- form.WithInput(p.lines).WithAccessible(true).RunWithContext(ctx)
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", err
		}
	}
	if answer == "" && p.lines.exhausted() {
		return "", io.EOF
	}
	return answer, nil
}

// lineReader hands out at most one line per Read so a scanner on top of it
// never buffers input meant for a later question.
type lineReader struct {
	r    *bufio.Reader
	rest []byte
	eof  bool
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.rest) == 0 {
		line, err := l.r.ReadBytes('\n')
		if len(line) == 0 {
			if errors.Is(err, io.EOF) {
				l.eof = true
			}
			return 0, err
		}
		l.rest = line
	}
	n := copy(b, l.rest)
	l.rest = l.rest[n:]
	return n, nil
}

func (l *lineReader) exhausted() bool {
	return l.eof && len(l.rest) == 0
}
