package list

import (
	"errors"
	"fmt"
)

var (
	// ErrRemoveBlocked is returned when a removal would take an active list
	// below its minimum. The list is left unchanged.
	ErrRemoveBlocked = errors.New("list: remove blocked by minimum entries")
	// ErrIndexOutOfRange signals a programmer error addressing a missing row.
	ErrIndexOutOfRange = errors.New("list: index out of range")
	// ErrUnknownEntry is returned when no entry carries the requested id.
	ErrUnknownEntry = errors.New("list: unknown entry")
)

// IndexError describes an out-of-range index.
type IndexError struct {
	List  string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("list: %s index %d out of range [0,%d)", e.List, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
