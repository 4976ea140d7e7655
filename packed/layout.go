package packed

import "github.com/hupe1980/hammy/nucleotide"

const (
	// WordBits is the width of a storage word.
	WordBits = 64

	// BitsPerSymbol is the width of one lane.
	BitsPerSymbol = nucleotide.BitsPerSymbol

	// SymbolsPerWord is the number of lanes per word.
	SymbolsPerWord = WordBits / BitsPerSymbol

	// LaneMask has the low bit of every lane set (0x5555... for 2-bit lanes).
	// Dividing all-ones by the all-ones lane value repeats 0b01 across the word.
	LaneMask = ^uint64(0) / (1<<BitsPerSymbol - 1)

	symbolMask = 1<<BitsPerSymbol - 1
)

// WordsFor returns the number of words needed for length symbols.
func WordsFor(length int) int {
	if length <= 0 {
		return 0
	}
	return (length + SymbolsPerWord - 1) / SymbolsPerWord
}

// TailMask returns the mask of occupied bits in the final word of a sequence of the given length.
// A full final word yields all ones.
func TailMask(length int) uint64 {
	r := length % SymbolsPerWord
	if r == 0 {
		return ^uint64(0)
	}
	return uint64(1)<<(uint(r)*BitsPerSymbol) - 1
}

// laneShift returns the bit offset of symbol i inside its word.
func laneShift(i int) uint {
	return uint(i%SymbolsPerWord) * BitsPerSymbol
}
