// Package distance computes Hamming distances between packed nucleotide sequences.
//
// Distances are computed word by word without decoding symbols:
//
//  1. x = wa XOR wb. A 2-bit lane of x is 00 exactly where the symbols agree.
//  2. fold = (x | x>>1) & packed.LaneMask. One set bit per differing lane.
//  3. popcount(fold) is the number of mismatches in that word.
//
// The final word is ANDed with packed.TailMask before folding, so padding lanes never count,
// whatever their content.
//
// All functions are pure and safe for concurrent use.
package distance
