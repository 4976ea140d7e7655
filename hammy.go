package hammy

import (
	"context"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hammy/batch"
	"github.com/hupe1980/hammy/blobstore"
	"github.com/hupe1980/hammy/distance"
	"github.com/hupe1980/hammy/internal/popcount"
	"github.com/hupe1980/hammy/library"
	"github.com/hupe1980/hammy/packed"
)

// Encode packs raw ASCII nucleotides. Only uppercase A, C, G and T are accepted.
func Encode(raw []byte) (packed.Sequence, error) {
	return packed.Encode(raw)
}

// EncodeString is Encode for strings.
func EncodeString(s string) (packed.Sequence, error) {
	return packed.EncodeString(s)
}

// HammingDistance returns the number of positions at which a and b differ.
// It fails with *LengthMismatchError if the lengths differ.
func HammingDistance(a, b packed.Sequence) (int, error) {
	return distance.Hamming(a, b)
}

// Hammy is a configured engine. It is safe for concurrent use.
type Hammy struct {
	opts options
}

// New creates an engine.
func New(optFns ...Option) *Hammy {
	return &Hammy{opts: applyOptions(optFns)}
}

// Encode packs raw under the engine's case policy.
func (h *Hammy) Encode(ctx context.Context, raw []byte) (packed.Sequence, error) {
	start := time.Now()
	seq, err := packed.Encode(raw, packed.WithCasePolicy(h.opts.casePolicy))
	h.opts.metricsCollector.RecordEncode(len(raw), time.Since(start), err)
	h.opts.logger.LogEncode(ctx, len(raw), err)
	return seq, err
}

// EncodeString is Encode for strings.
func (h *Hammy) EncodeString(ctx context.Context, s string) (packed.Sequence, error) {
	return h.Encode(ctx, []byte(s))
}

// Distance returns the Hamming distance between a and b.
func (h *Hammy) Distance(ctx context.Context, a, b packed.Sequence) (int, error) {
	start := time.Now()
	d, err := distance.Hamming(a, b)
	h.opts.metricsCollector.RecordDistance(time.Since(start), err)
	h.opts.logger.LogDistance(ctx, a.Len(), d, err)
	return d, err
}

// Compare encodes a and b and returns their Hamming distance.
func (h *Hammy) Compare(ctx context.Context, a, b []byte) (int, error) {
	sa, err := h.Encode(ctx, a)
	if err != nil {
		return 0, err
	}
	sb, err := h.Encode(ctx, b)
	if err != nil {
		return 0, err
	}
	return h.Distance(ctx, sa, sb)
}

func (h *Hammy) batchOptions() []batch.Option {
	return []batch.Option{
		batch.WithConcurrency(h.opts.concurrency),
		batch.WithController(h.opts.controller),
		batch.WithLogger(h.opts.logger.Logger),
	}
}

func (h *Hammy) finishBatch(ctx context.Context, op string, pairs int, start time.Time, err error) {
	d := time.Since(start)
	h.opts.metricsCollector.RecordBatch(op, pairs, d, err)
	h.opts.logger.LogBatch(ctx, op, pairs, d, err)
}

// Matrix returns the symmetric all-pairs distance matrix of seqs.
func (h *Hammy) Matrix(ctx context.Context, seqs []packed.Sequence) ([][]int, error) {
	start := time.Now()
	m, err := batch.Matrix(ctx, seqs, h.batchOptions()...)
	h.finishBatch(ctx, "matrix", len(seqs)*(len(seqs)-1)/2, start, err)
	return m, err
}

// Query returns the distance from query to every target.
func (h *Hammy) Query(ctx context.Context, query packed.Sequence, targets []packed.Sequence) ([]int, error) {
	start := time.Now()
	d, err := batch.Query(ctx, query, targets, h.batchOptions()...)
	h.finishBatch(ctx, "query", len(targets), start, err)
	return d, err
}

// Neighbors returns the indices of targets within maxDist of query.
func (h *Hammy) Neighbors(ctx context.Context, query packed.Sequence, targets []packed.Sequence, maxDist int) (*roaring.Bitmap, error) {
	start := time.Now()
	bm, err := batch.Neighbors(ctx, query, targets, maxDist, h.batchOptions()...)
	h.finishBatch(ctx, "neighbors", len(targets), start, err)
	return bm, err
}

// Match is a library entry close to a query.
type Match struct {
	Index    int
	ID       string
	Distance int
}

// Search returns the entries of lib within maxDist of query, closest first.
// Ties keep library order.
func (h *Hammy) Search(ctx context.Context, lib *library.Library, query packed.Sequence, maxDist int) ([]Match, error) {
	start := time.Now()
	matches, err := h.search(ctx, lib, query, maxDist)
	h.finishBatch(ctx, "search", lib.Len(), start, err)
	return matches, err
}

func (h *Hammy) search(ctx context.Context, lib *library.Library, query packed.Sequence, maxDist int) ([]Match, error) {
	hits, err := batch.Neighbors(ctx, query, lib.Sequences(), maxDist, h.batchOptions()...)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, hits.GetCardinality())
	it := hits.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		id, seq := lib.At(i)
		d, err := distance.Hamming(query, seq)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{Index: i, ID: id, Distance: d})
	}
	sort.SliceStable(matches, func(a, b int) bool { return matches[a].Distance < matches[b].Distance })
	return matches, nil
}

func (h *Hammy) libraryOptions() []library.Option {
	return []library.Option{
		library.WithCompression(h.opts.compression),
		library.WithController(h.opts.controller),
		library.WithLogger(h.opts.logger.Logger),
		library.WithConcurrency(h.opts.concurrency),
	}
}

// Save persists lib to store.
func (h *Hammy) Save(ctx context.Context, store blobstore.BlobStore, lib *library.Library) (library.Entry, error) {
	start := time.Now()
	entry, err := library.Save(ctx, store, lib, h.libraryOptions()...)
	h.opts.metricsCollector.RecordLibrary("save", time.Since(start), err)
	h.opts.logger.LogSave(ctx, lib.Name(), entry.Segment, err)
	return entry, err
}

// Load reads the named library from store.
func (h *Hammy) Load(ctx context.Context, store blobstore.BlobStore, name string) (*library.Library, error) {
	start := time.Now()
	lib, err := library.Load(ctx, store, name, h.libraryOptions()...)
	h.opts.metricsCollector.RecordLibrary("load", time.Since(start), err)
	count := 0
	if lib != nil {
		count = lib.Len()
	}
	h.opts.logger.LogLoad(ctx, name, count, err)
	return lib, err
}

// LoadAll reads every library in store, sorted by name.
func (h *Hammy) LoadAll(ctx context.Context, store blobstore.BlobStore) ([]*library.Library, error) {
	start := time.Now()
	libs, err := library.LoadAll(ctx, store, h.libraryOptions()...)
	h.opts.metricsCollector.RecordLibrary("load", time.Since(start), err)
	count := 0
	for _, lib := range libs {
		count += lib.Len()
	}
	h.opts.logger.LogLoad(ctx, "*", count, err)
	return libs, err
}

// Capabilities describes the packing layout and the active popcount kernel.
type Capabilities struct {
	Kernel         string
	Hardware       bool
	Overridden     bool
	WordBits       int
	BitsPerSymbol  int
	SymbolsPerWord int
}

// Capabilities reports the packing layout and popcount kernel in use.
func (h *Hammy) Capabilities() Capabilities {
	return Capabilities{
		Kernel:         popcount.Active().String(),
		Hardware:       popcount.HasHardware(),
		Overridden:     popcount.IsOverridden(),
		WordBits:       packed.WordBits,
		BitsPerSymbol:  packed.BitsPerSymbol,
		SymbolsPerWord: packed.SymbolsPerWord,
	}
}
