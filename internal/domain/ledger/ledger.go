// Package ledger holds the append-only assignment history and answers
// recency questions against it.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/okian/rota/internal/domain/dates"
	"github.com/okian/rota/internal/domain/model"
)

// GroupResolver maps a raw role key to its fairness group.
type GroupResolver interface {
	FairnessGroup(raw string) string
}

// Entry is one grouped record shown during selection.
type Entry struct {
	Date time.Time
	Part string
}

// Ledger is the in-memory assignment history. It is owned by a single
// orchestrator and is not safe for concurrent use.
type Ledger struct {
	records  []model.HistoryRecord
	byPerson map[string][]int
	groups   GroupResolver
	groupOf  map[string]string
}

// New creates a ledger over a copy of records.
func New(groups GroupResolver, records []model.HistoryRecord) *Ledger {
	l := &Ledger{
		records:  make([]model.HistoryRecord, 0, len(records)),
		byPerson: make(map[string][]int),
		groups:   groups,
		groupOf:  make(map[string]string),
	}
	for _, r := range records {
		l.add(r)
	}
	return l
}

func (l *Ledger) add(r model.HistoryRecord) {
	l.byPerson[r.Name] = append(l.byPerson[r.Name], len(l.records))
	l.records = append(l.records, r)
}

// group memoizes the fairness group of a raw part.
func (l *Ledger) group(part string) string {
	if g, ok := l.groupOf[part]; ok {
		return g
	}
	g := l.groups.FairnessGroup(strings.TrimSpace(part))
	l.groupOf[part] = g
	return g
}

// MostRecentDate returns the latest date person performed any role in
// group, or dates.Sentinel. Records without a usable date are ignored.
func (l *Ledger) MostRecentDate(person, group string) time.Time {
	latest := dates.Sentinel
	for _, i := range l.byPerson[person] {
		r := l.records[i]
		if !r.HasDate() || l.group(r.Part) != group {
			continue
		}
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest
}

// RecentGroupRecords returns up to limit records of person in group, most
// recent first. Records sharing a date keep ledger order.
func (l *Ledger) RecentGroupRecords(person, group string, limit int) []Entry {
	if limit <= 0 {
		return nil
	}
	var out []Entry
	for _, i := range l.byPerson[person] {
		r := l.records[i]
		if !r.HasDate() || l.group(r.Part) != group {
			continue
		}
		out = append(out, Entry{Date: r.Date, Part: r.Part})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Append records that person performed the raw role part on date.
func (l *Ledger) Append(person, part string, date time.Time) model.HistoryRecord {
	date = dates.Day(date)
	r := model.HistoryRecord{
		Name:     person,
		Part:     part,
		Date:     date,
		DateText: dates.Format(date),
	}
	l.add(r)
	return r
}

// Records returns a copy of every record in append order.
func (l *Ledger) Records() []model.HistoryRecord {
	out := make([]model.HistoryRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}
