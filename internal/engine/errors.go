package engine

import "github.com/dshills/textmagic/internal/engine/buffer"

// Errors surfaced by engine operations, re-exported from the line store.
var (
	// ErrIndexOutOfRange indicates a broken row/column invariant.
	ErrIndexOutOfRange = buffer.ErrIndexOutOfRange

	// ErrNoPath indicates Save was called before a file name is known.
	ErrNoPath = buffer.ErrNoPath
)

// IOError is the storage failure type returned by Save and SaveAs.
type IOError = buffer.IOError
