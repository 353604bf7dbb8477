// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDuplicatePerson is returned when two roster rows share a name.
var ErrDuplicatePerson = errors.New("duplicate person")

// Gender is the roster gender marker.
type Gender string

// Recognized gender markers.
const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "V" // varón
	GenderFemale      Gender = "M" // mujer
)

// ParseGender maps a roster cell to a Gender; anything unrecognized is unspecified.
func ParseGender(s string) Gender {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(GenderMale):
		return GenderMale
	case string(GenderFemale):
		return GenderFemale
	default:
		return GenderUnspecified
	}
}

// Person is one roster entry. Eligibility and modifiers are keyed by
// eligibility column.
type Person struct {
	Name      string
	Active    bool
	Gender    Gender
	Eligible  map[string]bool
	Modifiers map[string]float64
}

// CanDo reports whether the person is affirmatively eligible for column.
func (p Person) CanDo(column string) bool {
	return p.Eligible[column]
}

// Modifier returns the weight for column, 1.0 when unset.
func (p Person) Modifier(column string) float64 {
	if m, ok := p.Modifiers[column]; ok {
		return m
	}
	return 1.0
}

// Roster is the ordered, name-indexed set of people. Order is the load
// order and is what breaks ranking ties.
type Roster struct {
	people []Person
	index  map[string]int
}

// NewRoster builds a roster, rejecting duplicate names.
func NewRoster(people []Person) (*Roster, error) {
	r := &Roster{
		people: make([]Person, 0, len(people)),
		index:  make(map[string]int, len(people)),
	}
	for _, p := range people {
		if _, ok := r.index[p.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePerson, p.Name)
		}
		r.index[p.Name] = len(r.people)
		r.people = append(r.people, p)
	}
	return r, nil
}

// People returns the people in load order. Callers must not modify it.
func (r *Roster) People() []Person {
	return r.people
}

// Lookup finds a person by name.
func (r *Roster) Lookup(name string) (Person, bool) {
	i, ok := r.index[name]
	if !ok {
		return Person{}, false
	}
	return r.people[i], true
}

// Len returns the number of people.
func (r *Roster) Len() int {
	return len(r.people)
}

// HistoryRecord is one committed assignment. DateText is the stored cell;
// Date is zero when that text did not parse.
type HistoryRecord struct {
	Name     string
	Part     string
	Date     time.Time
	DateText string
}

// HasDate reports whether the record carries a usable date.
func (r HistoryRecord) HasDate() bool {
	return !r.Date.IsZero()
}
