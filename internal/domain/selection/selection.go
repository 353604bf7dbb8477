// Package selection presents ranked candidates to an operator and resolves
// the answer into a chosen name or a skip.
//
// The protocol never touches the ledger. Invalid answers are rejected and
// asked again without a retry limit.
package selection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/rota/internal/domain/dates"
	"github.com/okian/rota/internal/domain/ledger"
	"github.com/okian/rota/internal/domain/ranking"
)

// SkipToken is the answer that declines a slot.
const SkipToken = "skip"

const defaultRecentLimit = 3

// Prompter obtains one line of operator input for a question.
// It returns io.EOF when no more input is available.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}

// History supplies the grouped records shown under each candidate.
type History interface {
	RecentGroupRecords(person, group string, limit int) []ledger.Entry
}

// Recorder counts rejected answers.
type Recorder interface {
	RecordInvalidAnswer()
}

type noopRecorder struct{}

func (noopRecorder) RecordInvalidAnswer() {}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// Request is one slot awaiting a decision.
type Request struct {
	Label      string
	Date       time.Time
	Text       string
	Candidates []ranking.Candidate
	// Group, when set, is the fairness group whose recent records are
	// listed under each candidate.
	Group string
	// EmptySkips accepts the empty answer as a skip.
	EmptySkips bool
}

// Result is the outcome of a request. Name is empty when skipped.
type Result struct {
	Name    string
	Skipped bool
	// Empty reports that there was nobody to offer.
	Empty bool
}

// Question is an enumerated question such as "which gender".
type Question struct {
	Prompt string
	// Options are the accepted answers, compared case-insensitively.
	Options []string
	// Default is returned for an empty answer. Empty means no default.
	Default string
	// Invalid is printed when an answer is rejected.
	Invalid string
}

// Protocol resolves selection requests through a Prompter.
type Protocol struct {
	prompter    Prompter
	out         io.Writer
	history     History
	recentLimit int
	recorder    Recorder
}

// New creates a Protocol reading answers from prompter.
func New(prompter Prompter, opts ...Option) *Protocol {
	p := &Protocol{
		prompter:    prompter,
		out:         os.Stdout,
		recentLimit: defaultRecentLimit,
		recorder:    noopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Select shows the candidates of req and waits for a valid answer.
// An empty candidate list is skipped without prompting.
func (p *Protocol) Select(ctx context.Context, req Request) (Result, error) {
	day := dates.Format(req.Date)
	if len(req.Candidates) == 0 {
		p.printf("\nNo eligible candidates for %s on %s. Skipping.\n", req.Label, day)
		return Result{Skipped: true, Empty: true}, nil
	}

	p.printf("\n%s\n", headingStyle.Render(fmt.Sprintf("--- %s on %s ---", req.Label, day)))
	if req.Text != "" {
		p.printf("%s\n", textStyle.Render("Assignment: "+req.Text))
	}

	shown := len(req.Candidates)
	for i, c := range req.Candidates {
		p.printf("%d) %s (score=%.2f, last=%s)\n", i+1, c.Person.Name, c.Score, dates.Display(c.LastDate))
		p.printRecent(c.Person.Name, req.Group)
	}

	question := fmt.Sprintf("Choose 1..%d or '%s': ", shown, SkipToken)
	for {
		answer, err := p.ask(ctx, question)
		if err != nil {
			return Result{}, err
		}
		if answer == SkipToken || (answer == "" && req.EmptySkips) {
			return Result{Skipped: true}, nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= shown {
			return Result{Name: req.Candidates[n-1].Person.Name}, nil
		}
		p.reject(fmt.Sprintf("Invalid input! Please type a number from 1..%d or '%s'.", shown, SkipToken))
	}
}

// Ask poses an enumerated question and returns the accepted option in
// lower case, or q.Default for an empty answer.
func (p *Protocol) Ask(ctx context.Context, q Question) (string, error) {
	for {
		answer, err := p.ask(ctx, q.Prompt)
		if err != nil {
			return "", err
		}
		if answer == "" && q.Default != "" {
			return strings.ToLower(q.Default), nil
		}
		if slices.ContainsFunc(q.Options, func(o string) bool { return strings.EqualFold(o, answer) }) {
			return answer, nil
		}
		msg := q.Invalid
		if msg == "" {
			msg = fmt.Sprintf("Invalid input. Type one of: %s.", strings.Join(q.Options, ", "))
		}
		p.reject(msg)
	}
}

func (p *Protocol) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	answer, err := p.prompter.Ask(ctx, question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %w", ErrPromptClosed, err)
		}
		return "", err
	}
	// An answer that raced a cancellation is dropped.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(answer)), nil
}

func (p *Protocol) reject(msg string) {
	p.recorder.RecordInvalidAnswer()
	p.printf("%s\n", warnStyle.Render(msg))
}

func (p *Protocol) printRecent(name, group string) {
	if group == "" || p.history == nil || p.recentLimit == 0 {
		return
	}
	for i, e := range p.history.RecentGroupRecords(name, group, p.recentLimit) {
		p.printf("   Last %s(n-%d): %s (%s)\n", group, i+1, dates.Format(e.Date), e.Part)
	}
}

func (p *Protocol) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...) //nolint:errcheck
}
