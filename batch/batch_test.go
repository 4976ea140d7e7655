package batch

import (
	"context"
	"testing"

	"github.com/hupe1980/hammy/distance"
	"github.com/hupe1980/hammy/packed"
	"github.com/hupe1980/hammy/resource"
	"github.com/hupe1980/hammy/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeAll(t *testing.T, raws [][]byte) []packed.Sequence {
	t.Helper()
	out := make([]packed.Sequence, len(raws))
	for i, r := range raws {
		s, err := packed.Encode(r)
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

func TestMatrix(t *testing.T) {
	rng := testutil.NewRNG(4711)
	raws := rng.Sequences(40, 45)
	seqs := encodeAll(t, raws)

	m, err := Matrix(t.Context(), seqs, WithConcurrency(4))
	require.NoError(t, err)
	require.Len(t, m, len(seqs))

	for i := range seqs {
		assert.Zero(t, m[i][i])
		for j := range seqs {
			want, err := distance.Naive(raws[i], raws[j])
			require.NoError(t, err)
			assert.Equal(t, want, m[i][j], "i=%d j=%d", i, j)
			assert.Equal(t, m[i][j], m[j][i])
		}
	}
}

func TestMatrixEmpty(t *testing.T) {
	m, err := Matrix(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestMatrixLengthMismatch(t *testing.T) {
	seqs := []packed.Sequence{packed.MustEncode("ACGT"), packed.MustEncode("ACGT"), packed.MustEncode("ACG")}
	m, err := Matrix(t.Context(), seqs)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, distance.ErrLengthMismatch)
}

func TestMatrixMemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64})
	seqs := encodeAll(t, testutil.NewRNG(1).Sequences(10, 8))

	_, err := Matrix(t.Context(), seqs, WithController(rc))
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Zero(t, rc.MemoryUsage())
	assert.True(t, rc.TryAcquireJob(), "job slot must be released")
}

func TestMatrixCanceled(t *testing.T) {
	seqs := encodeAll(t, testutil.NewRNG(1).Sequences(10, 8))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := Matrix(ctx, seqs, WithController(resource.NewController(resource.Config{})))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuery(t *testing.T) {
	rng := testutil.NewRNG(4711)
	raws := rng.Sequences(500, 33)
	targets := encodeAll(t, raws)
	q := targets[7]

	got, err := Query(t.Context(), q, targets, WithConcurrency(3))
	require.NoError(t, err)
	require.Len(t, got, len(targets))
	for i := range raws {
		want, _ := distance.Naive(raws[7], raws[i])
		assert.Equal(t, want, got[i])
	}

	_, err = Query(t.Context(), packed.MustEncode("A"), targets)
	assert.ErrorIs(t, err, distance.ErrLengthMismatch)
}

func TestNeighbors(t *testing.T) {
	rng := testutil.NewRNG(4711)
	base := rng.Sequence(24)

	raws := make([][]byte, 300)
	for i := range raws {
		raws[i], _ = rng.MutateN(base, i%4)
	}
	targets := encodeAll(t, raws)
	q := packed.MustEncode(string(base))

	hits, err := Neighbors(t.Context(), q, targets, 1, WithConcurrency(2))
	require.NoError(t, err)

	for i := range targets {
		assert.Equal(t, i%4 <= 1, hits.Contains(uint32(i)), "i=%d", i)
	}
	assert.Equal(t, uint64(150), hits.GetCardinality())

	none, err := Neighbors(t.Context(), q, nil, 1)
	require.NoError(t, err)
	assert.True(t, none.IsEmpty())
}
