package distance

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch matches every *LengthMismatchError via errors.Is.
	ErrLengthMismatch = errors.New("distance: length mismatch")

	// ErrTooLong is returned by Mismatches for sequences whose positions do not fit a uint32.
	ErrTooLong = errors.New("distance: sequence too long for position bitmap")
)

// LengthMismatchError indicates that two sequences of different length were compared.
type LengthMismatchError struct {
	A int
	B int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("distance: length mismatch: %d != %d", e.A, e.B)
}

// Is reports whether target is ErrLengthMismatch.
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}
