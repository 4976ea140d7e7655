// Package testutil provides testing utilities for hammy.
//
// This package is intended for use in tests and benchmarks only.
// It generates reproducible random nucleotide sequences and controlled point mutations.
//
//	rng := testutil.NewRNG(seed)
//	seq := rng.Sequence(150)             // random ACGT bytes
//	mut, pos := rng.MutateN(seq, 3)      // exactly 3 substitutions
//	panel := rng.ClusteredSequences(100, 12, 5, 2)
package testutil
