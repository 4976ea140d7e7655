// Package packed implements the 2-bit packed representation of nucleotide sequences.
//
// A Sequence stores its symbols in uint64 words, 32 symbols per word, packed low-to-high:
// symbol i occupies bits [2*(i%32), 2*(i%32)+2) of word i/32.
//
//	word 0:  ... | s3 | s2 | s1 | s0 |
//	bits:        7-6  5-4  3-2  1-0
//
// Lanes past the logical length in the final word are always zero. Distance code does not rely
// on that and masks them with TailMask anyway.
//
// Sequences are immutable values. Copying one is cheap and safe for concurrent use.
//
//	seq, err := packed.Encode([]byte("GATTACA"))
//	if err != nil {
//	    var ise *packed.InvalidSymbolError
//	    if errors.As(err, &ise) {
//	        fmt.Println("bad byte at", ise.Position)
//	    }
//	}
package packed
