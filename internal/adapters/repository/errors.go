package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrStoreRead     = errors.New("store read failed")
	ErrStoreWrite    = errors.New("store write failed")
	ErrMissingColumn = errors.New("missing column")
	ErrNoDates       = errors.New("no date columns")
	ErrDuplicateDate = errors.New("date column repeated")
)
