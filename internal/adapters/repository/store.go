// Package repository loads and persists the roster, the assignment ledger,
// the weekly program and the final assignment table.
package repository

import (
	"context"

	"github.com/okian/rota/internal/domain/model"
)

// Ledger column headers.
const (
	ColumnName = "Name"
	ColumnPart = "Part"
	ColumnDate = "AssignmentDate"
)

// LedgerStore persists the assignment history. Save overwrites the stored
// state with records in full.
type LedgerStore interface {
	// Load returns every stored record in append order. A store that does
	// not exist yet loads as empty.
	Load(ctx context.Context) ([]model.HistoryRecord, error)
	Save(ctx context.Context, records []model.HistoryRecord) error
	Close() error
}
