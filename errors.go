package hammy

import (
	"github.com/hupe1980/hammy/blobstore"
	"github.com/hupe1980/hammy/distance"
	"github.com/hupe1980/hammy/library"
	"github.com/hupe1980/hammy/packed"
	"github.com/hupe1980/hammy/resource"
)

var (
	// ErrEmptyInput is returned when encoding an empty sequence.
	ErrEmptyInput = packed.ErrEmptyInput

	// ErrInvalidSymbol matches every *InvalidSymbolError.
	ErrInvalidSymbol = packed.ErrInvalidSymbol

	// ErrLengthMismatch matches every *LengthMismatchError.
	ErrLengthMismatch = distance.ErrLengthMismatch

	// ErrNotFound is returned when a library or blob does not exist.
	ErrNotFound = library.ErrNotFound

	// ErrCorruptLibrary matches every *CorruptLibraryError.
	ErrCorruptLibrary = library.ErrCorruptLibrary

	// ErrConflict is returned by Save when another writer committed first.
	ErrConflict = library.ErrConflict

	// ErrBlobNotFound is returned by blob stores for missing blobs.
	ErrBlobNotFound = blobstore.ErrNotFound

	// ErrMemoryLimitExceeded is returned when a batch result does not fit the memory budget.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

type (
	// InvalidSymbolError reports the first byte outside the alphabet and its position.
	InvalidSymbolError = packed.InvalidSymbolError

	// LengthMismatchError reports the lengths of two incomparable sequences.
	LengthMismatchError = distance.LengthMismatchError

	// CorruptLibraryError describes a segment or manifest that failed validation.
	CorruptLibraryError = library.CorruptError
)
