package packed

import (
	"slices"
	"strings"

	"github.com/hupe1980/hammy/nucleotide"
)

// Sequence is a packed nucleotide sequence.
//
// The zero value is an empty sequence. It can never be produced by Encode.
type Sequence struct {
	length int
	words  []uint64
}

// Encode packs raw into a Sequence.
//
// Every byte must be a nucleotide under the configured case policy. Encoding stops at the first
// offending byte and returns an *InvalidSymbolError. An empty input returns ErrEmptyInput.
func Encode(raw []byte, optFns ...Option) (Sequence, error) {
	if len(raw) == 0 {
		return Sequence{}, ErrEmptyInput
	}

	o := applyOptions(optFns)

	words := make([]uint64, WordsFor(len(raw)))
	for i, b := range raw {
		s, ok := nucleotide.Parse(b, o.casePolicy)
		if !ok {
			return Sequence{}, &InvalidSymbolError{Position: i, Byte: b}
		}
		words[i/SymbolsPerWord] |= s.Code() << laneShift(i)
	}

	return Sequence{length: len(raw), words: words}, nil
}

// EncodeString is Encode for string input.
func EncodeString(s string, optFns ...Option) (Sequence, error) {
	return Encode([]byte(s), optFns...)
}

// MustEncode is like Encode but panics on error. Intended for tests and constants.
func MustEncode(s string, optFns ...Option) Sequence {
	seq, err := EncodeString(s, optFns...)
	if err != nil {
		panic(err)
	}
	return seq
}

// FromSymbols packs an already validated symbol slice.
func FromSymbols(symbols []nucleotide.Symbol) (Sequence, error) {
	if len(symbols) == 0 {
		return Sequence{}, ErrEmptyInput
	}
	words := make([]uint64, WordsFor(len(symbols)))
	for i, s := range symbols {
		if s >= nucleotide.Count {
			return Sequence{}, ErrMalformed
		}
		words[i/SymbolsPerWord] |= s.Code() << laneShift(i)
	}
	return Sequence{length: len(symbols), words: words}, nil
}

// FromWords builds a Sequence from raw words, e.g. when loading persisted data.
// The words are copied. It fails with ErrMalformed if the word count does not match length or
// any padding lane is non-zero.
func FromWords(length int, words []uint64) (Sequence, error) {
	if length <= 0 {
		return Sequence{}, ErrEmptyInput
	}
	if len(words) != WordsFor(length) {
		return Sequence{}, ErrMalformed
	}
	if words[len(words)-1]&^TailMask(length) != 0 {
		return Sequence{}, ErrMalformed
	}
	return Sequence{length: length, words: slices.Clone(words)}, nil
}

// Len returns the number of symbols.
func (s Sequence) Len() int { return s.length }

// NumWords returns the number of storage words.
func (s Sequence) NumWords() int { return len(s.words) }

// Word returns storage word i.
func (s Sequence) Word(i int) uint64 { return s.words[i] }

// Words returns a copy of the storage words.
func (s Sequence) Words() []uint64 { return slices.Clone(s.words) }

// RawWords exposes the storage words without copying. Callers must not modify the result.
func (s Sequence) RawWords() []uint64 { return s.words }

// At returns the symbol at position i. It panics if i is out of range.
func (s Sequence) At(i int) nucleotide.Symbol {
	if i < 0 || i >= s.length {
		panic("packed: index out of range")
	}
	return nucleotide.Symbol((s.words[i/SymbolsPerWord] >> laneShift(i)) & symbolMask)
}

// Symbols decodes the sequence into a symbol slice.
func (s Sequence) Symbols() []nucleotide.Symbol {
	out := make([]nucleotide.Symbol, s.length)
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// String decodes the sequence back into upper-case letters.
func (s Sequence) String() string {
	var sb strings.Builder
	sb.Grow(s.length)
	for i := 0; i < s.length; i++ {
		sb.WriteByte(s.At(i).Byte())
	}
	return sb.String()
}

// Equal reports whether s and o hold the same symbols.
func (s Sequence) Equal(o Sequence) bool {
	return s.length == o.length && slices.Equal(s.words, o.words)
}

// IsZero reports whether s is the zero value.
func (s Sequence) IsZero() bool { return s.length == 0 }

// SizeBytes returns the in-memory size of the packed words.
func (s Sequence) SizeBytes() int { return len(s.words) * (WordBits / 8) }
