package quotes

import (
	"errors"
	"fmt"
)

// ErrEmptyQuote is returned by Submit when the text is blank after trimming.
var ErrEmptyQuote = errors.New("empty quote")

// ErrOutOfRange is wrapped by every *RangeError.
var ErrOutOfRange = errors.New("quote index out of range")

// RangeError reports an edit or delete request for an index the list does not have.
// Seeing one means the caller's view of the list is out of sync with the engine.
type RangeError struct {
	Op    string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
