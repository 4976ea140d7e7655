package distance

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hammy/packed"
)

// MaxPositions is the longest sequence Mismatches accepts.
const MaxPositions = math.MaxUint32 + 1

// Mismatches returns the positions at which a and b differ.
// The bitmap's cardinality equals Hamming(a, b).
func Mismatches(a, b packed.Sequence) (*roaring.Bitmap, error) {
	if a.Len() != b.Len() {
		return nil, &LengthMismatchError{A: a.Len(), B: b.Len()}
	}
	if err := checkPositions(a.Len()); err != nil {
		return nil, err
	}

	rb := roaring.New()
	wa, wb := a.RawWords(), b.RawWords()
	last := len(wa) - 1
	for i := range wa {
		x := wa[i] ^ wb[i]
		if i == last {
			x &= packed.TailMask(a.Len())
		}
		f := fold(x)
		base := uint32(i * packed.SymbolsPerWord)
		for f != 0 {
			lane := uint32(bits.TrailingZeros64(f)) / packed.BitsPerSymbol
			rb.Add(base + lane)
			f &= f - 1
		}
	}
	return rb, nil
}

func checkPositions(length int) error {
	if uint64(length) > MaxPositions {
		return fmt.Errorf("%w: %d symbols", ErrTooLong, length)
	}
	return nil
}
