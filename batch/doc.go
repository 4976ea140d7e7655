// Package batch schedules many Hamming distance computations across goroutines.
//
// Each individual distance is a pure, single-threaded call into package distance. This package
// only decides how to split the work. It validates every length up front, so a batch either
// returns complete results or an error, never a partial result.
//
//	m, err := batch.Matrix(ctx, seqs, batch.WithConcurrency(8))
//	hits, err := batch.Neighbors(ctx, query, panel, 1) // indices within one mismatch
package batch
