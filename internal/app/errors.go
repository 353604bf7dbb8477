package service

import "errors"

// Sentinel errors returned by Run.
var (
	ErrNoStore    = errors.New("no ledger store configured")
	ErrCheckpoint = errors.New("checkpoint failed")
	ErrOutput     = errors.New("writing assignments failed")
)
