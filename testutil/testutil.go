package testutil

import (
	"bytes"
	"math/rand"
	"sync"
)

// Alphabet is the nucleotide alphabet in code order.
const Alphabet = "ACGT"

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Sequence returns a random upper-case sequence of length n.
func (r *RNG) Sequence(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sequenceLocked(n)
}

func (r *RNG) sequenceLocked(n int) []byte {
	seq := make([]byte, n)
	for i := range seq {
		seq[i] = Alphabet[r.rand.Intn(len(Alphabet))]
	}
	return seq
}

// Sequences generates num random sequences of length n.
// Uses a single backing array for efficiency.
func (r *RNG) Sequences(num, n int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := r.sequenceLocked(num * n)
	seqs := make([][]byte, num)
	for i := range num {
		seqs[i] = data[i*n : (i+1)*n : (i+1)*n]
	}
	return seqs
}

// Mutate returns a copy of seq with position pos replaced by a different nucleotide.
func (r *RNG) Mutate(seq []byte, pos int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := bytes.Clone(seq)
	r.substituteLocked(out, pos)
	return out
}

// MutateN returns a copy of seq with exactly k distinct positions substituted, and those positions.
// k is clamped to len(seq).
func (r *RNG) MutateN(seq []byte, k int) ([]byte, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k = min(k, len(seq))
	out := bytes.Clone(seq)
	positions := r.rand.Perm(len(seq))[:k]
	for _, pos := range positions {
		r.substituteLocked(out, pos)
	}
	return out, positions
}

func (r *RNG) substituteLocked(seq []byte, pos int) {
	cur := bytes.IndexByte([]byte(Alphabet), seq[pos])
	shift := 1 + r.rand.Intn(len(Alphabet)-1)
	if cur < 0 {
		seq[pos] = Alphabet[shift%len(Alphabet)]
		return
	}
	seq[pos] = Alphabet[(cur+shift)%len(Alphabet)]
}

// ClusteredSequences generates num sequences of length n around `clusters` random centroids.
// Each sequence differs from its centroid in at most `mutations` positions.
// Sequence i belongs to cluster i % clusters.
func (r *RNG) ClusteredSequences(num, n, clusters, mutations int) [][]byte {
	centroids := r.Sequences(clusters, n)

	seqs := make([][]byte, num)
	for i := range num {
		seqs[i], _ = r.MutateN(centroids[i%clusters], r.Intn(mutations+1))
	}
	return seqs
}
