package packed

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when encoding a zero-length input.
	ErrEmptyInput = errors.New("packed: empty input")

	// ErrInvalidSymbol matches every *InvalidSymbolError via errors.Is.
	ErrInvalidSymbol = errors.New("packed: invalid symbol")

	// ErrMalformed is returned when raw words or serialized bytes violate the packing invariants.
	ErrMalformed = errors.New("packed: malformed sequence")
)

// InvalidSymbolError reports the first byte that is not a nucleotide under the active case policy.
type InvalidSymbolError struct {
	Position int
	Byte     byte
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("packed: invalid symbol %q (0x%02x) at position %d", rune(e.Byte), e.Byte, e.Position)
}

// Is reports whether target is ErrInvalidSymbol.
func (e *InvalidSymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}
