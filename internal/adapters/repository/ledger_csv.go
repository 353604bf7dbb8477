package repository

import (
	"context"
	"fmt"

	"github.com/okian/rota/internal/domain/dates"
	"github.com/okian/rota/internal/domain/model"
)

// CSVLedger stores the history as a Name, Part, AssignmentDate table.
type CSVLedger struct {
	path string
}

// NewCSVLedger creates a ledger store at path.
func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

// Load reads the history. A missing file is an empty history. Every row is
// kept, including ones without a name, so a rewrite never drops records.
func (s *CSVLedger) Load(ctx context.Context) ([]model.HistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readTable(s.path)
	if err != nil {
		if notExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: ledger %s: %w", ErrStoreRead, s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := columnIndex(rows[0])
	for _, col := range []string{ColumnName, ColumnPart, ColumnDate} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: ledger %s: %w %q", ErrStoreRead, s.path, ErrMissingColumn, col)
		}
	}

	records := make([]model.HistoryRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, decodeRecord(cell(row, idx[ColumnName]), cell(row, idx[ColumnPart]), cell(row, idx[ColumnDate])))
	}
	return records, nil
}

// Save overwrites the file with records.
func (s *CSVLedger) Save(ctx context.Context, records []model.HistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{ColumnName, ColumnPart, ColumnDate})
	for _, r := range records {
		rows = append(rows, []string{r.Name, r.Part, encodeDate(r)})
	}
	if err := writeTable(s.path, rows); err != nil {
		return fmt.Errorf("%w: ledger %s: %w", ErrStoreWrite, s.path, err)
	}
	return nil
}

// Close is a no-op; the file is opened per call.
func (s *CSVLedger) Close() error { return nil }

// decodeRecord keeps text that does not parse so it survives a rewrite;
// such records carry no date and are ignored for scoring.
func decodeRecord(name, part, text string) model.HistoryRecord {
	r := model.HistoryRecord{Name: name, Part: part, DateText: text}
	if d, err := dates.Parse(text); err == nil {
		r.Date = d
	}
	return r
}

func encodeDate(r model.HistoryRecord) string {
	if r.HasDate() {
		return dates.Format(r.Date)
	}
	return r.DateText
}
