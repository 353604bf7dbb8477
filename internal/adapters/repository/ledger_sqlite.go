package repository

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/okian/rota/internal/domain/model"
)

const insertBatchSize = 500

// historyRow is the persisted form of a ledger record. ID keeps append order.
type historyRow struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"index;not null"`
	Part           string `gorm:"not null"`
	AssignmentDate string `gorm:"not null"`
}

func (historyRow) TableName() string { return "assignment_history" }

// SQLiteLedger stores the history in a SQLite database.
type SQLiteLedger struct {
	db *gorm.DB
}

// OpenSQLiteLedger opens (creating if needed) the database at path.
func OpenSQLiteLedger(path string) (*SQLiteLedger, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite %s: %w", ErrStoreRead, path, err)
	}
	if err := db.AutoMigrate(&historyRow{}); err != nil {
		return nil, fmt.Errorf("%w: sqlite %s: migrate: %w", ErrStoreWrite, path, err)
	}
	return &SQLiteLedger{db: db}, nil
}

// Load returns every record ordered by insertion.
func (s *SQLiteLedger) Load(ctx context.Context) ([]model.HistoryRecord, error) {
	var rows []historyRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: sqlite: %w", ErrStoreRead, err)
	}
	records := make([]model.HistoryRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, decodeRecord(r.Name, r.Part, r.AssignmentDate))
	}
	return records, nil
}

// Save replaces the stored history with records in one transaction.
func (s *SQLiteLedger) Save(ctx context.Context, records []model.HistoryRecord) error {
	rows := make([]historyRow, len(records))
	for i, r := range records {
		rows[i] = historyRow{ID: uint(i + 1), Name: r.Name, Part: r.Part, AssignmentDate: encodeDate(r)}
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&historyRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("%w: sqlite: %w", ErrStoreWrite, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteLedger) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
