package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrIndexOutOfRange indicates a row or column outside the buffer.
	// It signals a broken caller invariant and is not user-recoverable.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoPath indicates a save was attempted before a file name is known.
	ErrNoPath = errors.New("no file name specified")
)

// IOError reports a failure of the storage layer.
type IOError struct {
	Op   string // "open" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return e.Op + " " + e.Path
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func rowError(i, count int) error {
	return fmt.Errorf("%w: row %d (buffer has %d rows)", ErrIndexOutOfRange, i, count)
}

func columnError(row, col, length int) error {
	return fmt.Errorf("%w: column %d in row %d (length %d)", ErrIndexOutOfRange, col, row, length)
}
