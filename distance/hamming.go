package distance

import (
	"github.com/hupe1980/hammy/internal/popcount"
	"github.com/hupe1980/hammy/packed"
)

// Hamming returns the number of positions at which a and b differ.
// It fails with *LengthMismatchError if the sequences have different lengths.
func Hamming(a, b packed.Sequence) (int, error) {
	if a.Len() != b.Len() {
		return 0, &LengthMismatchError{A: a.Len(), B: b.Len()}
	}
	return hammingWords(a.RawWords(), b.RawWords(), a.Len()), nil
}

// Within reports whether a and b differ in at most maxDist positions.
// It stops scanning as soon as the running count exceeds maxDist.
func Within(a, b packed.Sequence, maxDist int) (bool, error) {
	if a.Len() != b.Len() {
		return false, &LengthMismatchError{A: a.Len(), B: b.Len()}
	}
	if maxDist < 0 {
		return false, nil
	}

	wa, wb := a.RawWords(), b.RawWords()
	if len(wa) == 0 {
		return true, nil
	}

	var dist int
	last := len(wa) - 1
	for i := 0; i < last; i++ {
		dist += popcount.Count64(fold(wa[i] ^ wb[i]))
		if dist > maxDist {
			return false, nil
		}
	}
	dist += popcount.Count64(fold((wa[last] ^ wb[last]) & packed.TailMask(a.Len())))
	return dist <= maxDist, nil
}

// Normalized returns the Hamming distance divided by the sequence length, in [0, 1].
func Normalized(a, b packed.Sequence) (float64, error) {
	d, err := Hamming(a, b)
	if err != nil {
		return 0, err
	}
	if a.Len() == 0 {
		return 0, nil
	}
	return float64(d) / float64(a.Len()), nil
}

// Naive compares two raw byte sequences position by position.
// It is the reference implementation the packed engine is tested against.
func Naive(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, &LengthMismatchError{A: len(a), B: len(b)}
	}
	var dist int
	for i := range a {
		if a[i] != b[i] {
			dist++
		}
	}
	return dist, nil
}

func hammingWords(wa, wb []uint64, length int) int {
	if len(wa) == 0 {
		return 0
	}

	var dist int
	last := len(wa) - 1
	for i := 0; i < last; i++ {
		dist += popcount.Count64(fold(wa[i] ^ wb[i]))
	}
	// Mask padding explicitly before folding the final word.
	dist += popcount.Count64(fold((wa[last] ^ wb[last]) & packed.TailMask(length)))
	return dist
}

// fold collapses every 2-bit lane of x into its low bit.
func fold(x uint64) uint64 {
	return (x | x>>1) & packed.LaneMask
}
