package batch

import (
	"context"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hammy/distance"
	"github.com/hupe1980/hammy/packed"
	"golang.org/x/sync/errgroup"
)

const minChunk = 64

// Matrix computes the symmetric all-pairs distance matrix of seqs.
// All sequences must share one length. The diagonal is zero.
func Matrix(ctx context.Context, seqs []packed.Sequence, optFns ...Option) ([][]int, error) {
	o := applyOptions(optFns)
	n := len(seqs)
	if n == 0 {
		return [][]int{}, nil
	}
	if err := sameLength(seqs[0].Len(), seqs); err != nil {
		return nil, err
	}

	release, err := o.begin(ctx, int64(n)*int64(n)*8)
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()

	data := make([]int, n*n)
	m := make([][]int, n)
	for i := range m {
		m[i] = data[i*n : (i+1)*n : (i+1)*n]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	// Row i fills the upper triangle of row i and mirrors it into column i.
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < n; j++ {
				d, err := distance.Hamming(seqs[i], seqs[j])
				if err != nil {
					return err
				}
				m[i][j] = d
				m[j][i] = d
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.DebugContext(ctx, "matrix computed",
		"count", n,
		"pairs", n*(n-1)/2,
		"duration", time.Since(start),
	)
	return m, nil
}

// Query computes the distance from query to every target, in target order.
func Query(ctx context.Context, query packed.Sequence, targets []packed.Sequence, optFns ...Option) ([]int, error) {
	o := applyOptions(optFns)
	if err := sameLength(query.Len(), targets); err != nil {
		return nil, err
	}

	release, err := o.begin(ctx, int64(len(targets))*8)
	if err != nil {
		return nil, err
	}
	defer release()

	out := make([]int, len(targets))
	err = o.forEachChunk(ctx, len(targets), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			d, err := distance.Hamming(query, targets[i])
			if err != nil {
				return err
			}
			out[i] = d
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.DebugContext(ctx, "query computed", "targets", len(targets))
	return out, nil
}

// Neighbors returns the indices of targets within maxDist mismatches of query.
func Neighbors(ctx context.Context, query packed.Sequence, targets []packed.Sequence, maxDist int, optFns ...Option) (*roaring.Bitmap, error) {
	o := applyOptions(optFns)
	if err := sameLength(query.Len(), targets); err != nil {
		return nil, err
	}

	release, err := o.begin(ctx, 0)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		mu    sync.Mutex
		parts []*roaring.Bitmap
	)
	err = o.forEachChunk(ctx, len(targets), func(lo, hi int) error {
		local := roaring.New()
		for i := lo; i < hi; i++ {
			ok, err := distance.Within(query, targets[i], maxDist)
			if err != nil {
				return err
			}
			if ok {
				local.Add(uint32(i))
			}
		}
		mu.Lock()
		parts = append(parts, local)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	hits := roaring.FastOr(parts...)
	o.logger.DebugContext(ctx, "neighbors computed",
		"targets", len(targets),
		"max_distance", maxDist,
		"hits", hits.GetCardinality(),
	)
	return hits, nil
}

// begin takes a job slot and reserves memory. The returned func releases both.
func (o options) begin(ctx context.Context, memBytes int64) (func(), error) {
	if err := o.controller.AcquireJob(ctx); err != nil {
		return nil, err
	}
	if err := o.controller.AcquireMemory(memBytes); err != nil {
		o.controller.ReleaseJob()
		return nil, err
	}
	return func() {
		o.controller.ReleaseMemory(memBytes)
		o.controller.ReleaseJob()
	}, nil
}

// forEachChunk splits [0, n) into chunks and runs fn on them concurrently.
func (o options) forEachChunk(ctx context.Context, n int, fn func(lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	chunk := max(minChunk, (n+o.concurrency*4-1)/(o.concurrency*4))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(lo, hi)
		})
	}
	return g.Wait()
}

func sameLength(length int, seqs []packed.Sequence) error {
	for _, s := range seqs {
		if s.Len() != length {
			return &distance.LengthMismatchError{A: length, B: s.Len()}
		}
	}
	return nil
}
