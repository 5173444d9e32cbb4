package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrAlreadyClockedIn  = errors.New("you already clocked in today")
	ErrNotClockedIn      = errors.New("you haven't clocked in today")
	ErrAlreadyClockedOut = errors.New("you already clocked out today")
)

// StorageError reports that the attendance store itself failed (unreachable, locked, corrupt).
// Nothing was written when it is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("attendance storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
