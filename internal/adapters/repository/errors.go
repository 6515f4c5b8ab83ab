package repository

import "errors"

// Sentinel kinds for persistence errors. All of them are also wrapped with
// model.ErrPersistenceFailure when returned from the store.
var (
	ErrInvalidName = errors.New("invalid document name")
	ErrUnknownArea = errors.New("unknown area")
	ErrLockTimeout = errors.New("index lock not acquired")
	ErrRollback    = errors.New("rollback incomplete")
)
