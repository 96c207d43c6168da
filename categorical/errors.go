package categorical

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Store operations that reference a series key
// not present in the store.
var ErrKeyNotFound = errors.New("key does not exist")

// ShapeError indicates that two related sequences have incompatible lengths,
// e.g. an event sequence that is not exactly one longer than its value
// sequence, or a boolean mask that does not cover the whole timeline.
type ShapeError struct {
	What     string
	Expected int
	Actual   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("categorical: %s length mismatch: expected %d, got %d", e.What, e.Expected, e.Actual)
}

// OutOfRangeError indicates that a queried or inserted dump lies outside the
// valid dump range of a series.
type OutOfRangeError struct {
	Dump int
	Min  int
	Max  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("categorical: dump %d is outside event range: %d <= dump < %d", e.Dump, e.Min, e.Max)
}

// UnorderableError indicates that an ordering comparison was requested
// between values that have no natural ordering, such as arrays or values of
// mixed non-numeric kinds. Equality remains well-defined for such values.
type UnorderableError struct {
	A Kind
	B Kind
}

func (e *UnorderableError) Error() string {
	return fmt.Sprintf("categorical: values of kind %s and %s are unorderable", e.A, e.B)
}
