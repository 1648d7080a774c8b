package types

import (
	"errors"
	"fmt"
)

// ErrStorage marks any failure executing a query against the database.
var ErrStorage = errors.New("storage failure")

// StorageError carries the failed operation. It matches both ErrStorage and
// the underlying driver error with errors.Is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
