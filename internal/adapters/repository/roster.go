package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/rota/internal/domain/dedupe"
	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/pkg/logger"
)

const yes = "YES"

// RosterLoader decodes the roster table. Cell coercion happens here once:
// flags become booleans, weights become floats.
type RosterLoader struct {
	name      string
	active    string
	gender    string
	modSuffix string
	logger    logger.Logger
}

// NewRosterLoader creates a loader with the default column names.
func NewRosterLoader(opts ...RosterOption) *RosterLoader {
	l := &RosterLoader{
		name:      "Hermano",
		active:    "Activo?",
		gender:    "Género",
		modSuffix: " Mod",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the roster at path. Rows without a name are ignored; a name
// repeated further down keeps its first row.
func (l *RosterLoader) Load(ctx context.Context, path string) (*model.Roster, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("%w: roster %s: %w", ErrStoreRead, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: roster %s: %w %q", ErrStoreRead, path, ErrMissingColumn, l.name)
	}
	people, dups, err := l.decode(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: roster %s: %w", ErrStoreRead, path, err)
	}
	if len(dups) > 0 && l.logger != nil {
		l.logger.Warn(ctx, "duplicate roster rows ignored",
			logger.String("path", path), logger.Any("names", dups))
	}
	return model.NewRoster(people)
}

// decode returns the people in row order and the names whose later rows
// were dropped as duplicates.
func (l *RosterLoader) decode(header []string, rows [][]string) ([]model.Person, []string, error) {
	idx := columnIndex(header)
	nameCol, ok := idx[l.name]
	if !ok {
		return nil, nil, fmt.Errorf("%w %q", ErrMissingColumn, l.name)
	}
	activeCol, hasActive := idx[l.active]
	genderCol, hasGender := idx[l.gender]

	type column struct {
		pos int
		key string
		mod bool
	}
	var columns []column
	for i, h := range header {
		k := headerKey(h)
		if k == "" || i == nameCol || (hasActive && i == activeCol) || (hasGender && i == genderCol) {
			continue
		}
		if base, ok := strings.CutSuffix(k, l.modSuffix); ok {
			columns = append(columns, column{pos: i, key: strings.TrimSpace(base), mod: true})
			continue
		}
		columns = append(columns, column{pos: i, key: k})
	}

	people := make([]model.Person, 0, len(rows))
	seen := dedupe.New(dedupe.WithCapacity(len(rows)))
	var dups []string
	for _, row := range rows {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		if seen.SeenAndRecord(name) {
			dups = append(dups, name)
			continue
		}
		p := model.Person{
			Name:      name,
			Eligible:  make(map[string]bool),
			Modifiers: make(map[string]float64),
		}
		if hasActive {
			p.Active = isYes(cell(row, activeCol))
		}
		if hasGender {
			p.Gender = model.ParseGender(cell(row, genderCol))
		}
		for _, c := range columns {
			v := cell(row, c.pos)
			if !c.mod {
				p.Eligible[c.key] = isYes(v)
				continue
			}
			if f, ok := parseWeight(v); ok {
				p.Modifiers[c.key] = f
			}
		}
		people = append(people, p)
	}
	return people, dups, nil
}

// parseWeight accepts finite, non-negative numbers with either decimal
// separator. Anything else leaves the default weight in place.
func parseWeight(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

func isYes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), yes)
}
