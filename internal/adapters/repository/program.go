package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/rota/internal/domain/dates"
	"github.com/okian/rota/internal/domain/meeting"
	"github.com/okian/rota/internal/domain/model"
)

// LoadProgram reads the weekly program table. Every header cell that parses
// as a date starts a week; other columns are skipped. Weeks keep column order.
// A date repeated in a later column is rejected with ErrDuplicateDate.
func LoadProgram(ctx context.Context, path string) ([]meeting.Week, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("%w: program %s: %w", ErrStoreRead, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: program %s", ErrNoDates, path)
	}

	var weeks []meeting.Week
	seen := make(map[time.Time]string)
	for col, h := range rows[0] {
		d, err := dates.Parse(h)
		if err != nil {
			continue
		}
		if first, ok := seen[d]; ok {
			return nil, fmt.Errorf("%w: program %s: %q and %q", ErrDuplicateDate, path, first, h)
		}
		seen[d] = h
		w := meeting.Week{Date: d, Header: h, Cells: make([]string, len(rows)-1)}
		for i, row := range rows[1:] {
			w.Cells[i] = cell(row, col)
		}
		weeks = append(weeks, w)
	}
	if len(weeks) == 0 {
		return nil, fmt.Errorf("%w: program %s", ErrNoDates, path)
	}
	return weeks, nil
}

// WriteAssignments writes the final table to path, dates as dd/mm/yyyy.
func WriteAssignments(ctx context.Context, path string, table *model.AssignmentTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeTable(path, table.Rows(dates.Format)); err != nil {
		return fmt.Errorf("%w: output %s: %w", ErrStoreWrite, path, err)
	}
	return nil
}

// AssignmentFile is the output table written at the end of a run.
type AssignmentFile struct {
	path string
}

// NewAssignmentFile creates an output sink at path.
func NewAssignmentFile(path string) *AssignmentFile {
	return &AssignmentFile{path: path}
}

// Write replaces the file with table.
func (f *AssignmentFile) Write(ctx context.Context, table *model.AssignmentTable) error {
	return WriteAssignments(ctx, f.path, table)
}
