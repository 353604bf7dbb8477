// Package scoring turns assignment recency into a comparable score.
//
// score = weeks since the person last did anything in the role's fairness
// group, times the person's modifier for the role's eligibility column.
// Higher means more overdue.
package scoring

import (
	"time"

	"github.com/okian/rota/internal/domain/dates"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/roles"
)

// History answers the recency question the score is built on.
type History interface {
	MostRecentDate(person, group string) time.Time
}

// Resolver maps a raw role key to its eligibility column and fairness group.
type Resolver interface {
	Resolve(raw string) roles.Key
}

// Input identifies what is being scored.
type Input struct {
	Person model.Person
	Role   string // raw role key
	Date   time.Time
}

// Result is the score for one person and the recency it was derived from.
type Result struct {
	Name     string
	Score    float64
	LastDate time.Time
}

// Scorer computes a score for an input.
type Scorer interface {
	Score(in Input) Result
}

// RecencyScorer implements Scorer over a ledger and the role groups.
type RecencyScorer struct {
	history History
	roles   Resolver
}

// NewRecencyScorer creates a scorer reading from history.
func NewRecencyScorer(history History, resolver Resolver) *RecencyScorer {
	return &RecencyScorer{history: history, roles: resolver}
}

// Score computes the recency score. People never assigned are measured
// from dates.Sentinel and so float to the top.
func (s *RecencyScorer) Score(in Input) Result {
	key := s.roles.Resolve(in.Role)
	last := s.history.MostRecentDate(in.Person.Name, key.Fairness)
	weeks := dates.WeeksBetween(last, in.Date)

	return Result{
		Name:     in.Person.Name,
		Score:    weeks * in.Person.Modifier(key.Eligibility),
		LastDate: last,
	}
}
