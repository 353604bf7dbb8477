// Package ranking filters the roster for a role and orders the survivors by
// fairness score.
package ranking

import (
	"sort"
	"time"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/scoring"
)

// Resolver maps a raw role key to its eligibility column.
type Resolver interface {
	EligibilityColumn(raw string) string
}

// Excluder reports names that must not be offered (e.g. already assigned today).
type Excluder interface {
	Contains(name string) bool
}

// Request describes one ranking.
type Request struct {
	Role     string // raw role key
	Date     time.Time
	Excluded Excluder
	// TopN caps the result; zero or negative means no cap.
	TopN int
	// Gender, when specified, is required of every candidate.
	Gender model.Gender
}

// Candidate is one ranked person.
type Candidate struct {
	Person   model.Person
	Score    float64
	LastDate time.Time
}

// Ranker produces deterministic rankings. It performs no IO.
type Ranker struct {
	roles  Resolver
	scorer scoring.Scorer
}

// New creates a Ranker.
func New(resolver Resolver, scorer scoring.Scorer) *Ranker {
	return &Ranker{roles: resolver, scorer: scorer}
}

// Rank filters roster in order (inactive, excluded, gender, eligibility),
// scores the rest and returns at most TopN candidates by descending score.
// Ties keep roster order.
func (r *Ranker) Rank(roster *model.Roster, req Request) []Candidate {
	column := r.roles.EligibilityColumn(req.Role)

	var out []Candidate
	for _, p := range roster.People() {
		if !eligible(p, column, req) {
			continue
		}
		res := r.scorer.Score(scoring.Input{Person: p, Role: req.Role, Date: req.Date})
		out = append(out, Candidate{Person: p, Score: res.Score, LastDate: res.LastDate})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if req.TopN > 0 && len(out) > req.TopN {
		out = out[:req.TopN]
	}
	return out
}

func eligible(p model.Person, column string, req Request) bool {
	if !p.Active {
		return false
	}
	if req.Excluded != nil && req.Excluded.Contains(p.Name) {
		return false
	}
	if req.Gender != model.GenderUnspecified && p.Gender != req.Gender {
		return false
	}
	return p.CanDo(column)
}
