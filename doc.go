// Package hammy computes Hamming distances between nucleotide sequences.
//
// Sequences over the alphabet {A, C, G, T} are packed at 2 bits per symbol into 64-bit words
// (32 symbols per word, filled from the low bits up). Distance is computed a word at a time:
// XOR the words, fold each 2-bit lane to one bit, and count the set bits. The unused lanes of
// the last word are zero after encoding and masked again during comparison.
//
// # Quick Start
//
//	a, _ := hammy.EncodeString("ACGTTGCA")
//	b, _ := hammy.EncodeString("ACGTTGAA")
//	d, _ := hammy.HammingDistance(a, b) // 1
//
// # Engine
//
// New returns a Hammy engine that adds structured logging, metrics, a configurable case
// policy and bounded parallelism for batch work:
//
//	h := hammy.New(
//	    hammy.WithCasePolicy(nucleotide.CaseInsensitive),
//	    hammy.WithLogger(hammy.NewJSONLogger(slog.LevelInfo)),
//	    hammy.WithConcurrency(8),
//	)
//	m, _ := h.Matrix(ctx, seqs)
//
// # Libraries
//
// Barcode or UMI panels live in a library.Library and persist to any blobstore.BlobStore
// (local disk, memory, S3 with optional DynamoDB commits, MinIO):
//
//	lib, _ := library.New("panel", 12)
//	_ = lib.AddString("bc01", "ACGTACGTACGT")
//	_ = h.Save(ctx, blobstore.NewLocalStore("./panels"), lib)
//	matches, _ := h.Search(ctx, lib, query, 1)
//
// # Packages
//
//   - nucleotide: symbols, codes and case policies
//   - packed: the 2-bit sequence representation
//   - distance: Hamming, bounded and normalized distances, mismatch positions
//   - batch: all-pairs matrices, one-vs-many queries and neighbor sets
//   - library: named sequence panels and their segment format
//   - blobstore: storage backends
//
// Set HAMMY_POPCOUNT=generic to force the portable popcount kernel.
package hammy
