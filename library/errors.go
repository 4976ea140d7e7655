package library

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned for library names that cannot be used in blob paths.
	ErrInvalidName = errors.New("library: invalid name")

	// ErrInvalidLength is returned for sequence lengths above MaxSeqLen.
	ErrInvalidLength = errors.New("library: invalid sequence length")

	// ErrInvalidID is returned when a sequence ID is empty.
	ErrInvalidID = errors.New("library: invalid id")

	// ErrDuplicateID is returned when an ID is added twice.
	ErrDuplicateID = errors.New("library: duplicate id")

	// ErrNotFound is returned when the manifest has no library with the requested name.
	ErrNotFound = errors.New("library: not found")

	// ErrConflict is returned by Save when another writer committed first.
	ErrConflict = errors.New("library: concurrent save")

	// ErrCorruptLibrary matches every *CorruptError via errors.Is.
	ErrCorruptLibrary = errors.New("library: corrupt")
)

// CorruptError describes a segment or manifest that failed validation.
type CorruptError struct {
	Blob   string
	Reason string
	Err    error
}

func (e *CorruptError) Error() string {
	msg := fmt.Sprintf("library: corrupt %s: %s", e.Blob, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrCorruptLibrary.
func (e *CorruptError) Is(target error) bool {
	return target == ErrCorruptLibrary
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

func corrupt(blob, reason string, err error) error {
	return &CorruptError{Blob: blob, Reason: reason, Err: err}
}
