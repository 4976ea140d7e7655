package hammy

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    encodeCounter     prometheus.Counter
//	    distanceHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordEncode(length int, duration time.Duration, err error) {
//	    p.encodeCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordEncode is called after each encode. length is the input length in symbols.
	RecordEncode(length int, duration time.Duration, err error)

	// RecordDistance is called after each single pairwise comparison.
	RecordDistance(duration time.Duration, err error)

	// RecordBatch is called after each batch job. op names the job ("matrix", "query",
	// "neighbors", "search") and pairs is the number of comparisons it covered.
	RecordBatch(op string, pairs int, duration time.Duration, err error)

	// RecordLibrary is called after each library save or load. op is "save" or "load".
	RecordLibrary(op string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordDistance(time.Duration, error)           {}
func (NoopMetricsCollector) RecordBatch(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLibrary(string, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeSymbols    atomic.Int64
	EncodeTotalNanos atomic.Int64
	DistanceCount    atomic.Int64
	DistanceErrors   atomic.Int64
	DistanceNanos    atomic.Int64
	BatchCount       atomic.Int64
	BatchErrors      atomic.Int64
	BatchPairs       atomic.Int64
	BatchTotalNanos  atomic.Int64
	SaveCount        atomic.Int64
	LoadCount        atomic.Int64
	LibraryErrors    atomic.Int64
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(length int, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
		return
	}
	b.EncodeSymbols.Add(int64(length))
}

// RecordDistance implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDistance(duration time.Duration, err error) {
	b.DistanceCount.Add(1)
	b.DistanceNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DistanceErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(_ string, pairs int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchErrors.Add(1)
		return
	}
	b.BatchPairs.Add(int64(pairs))
}

// RecordLibrary implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLibrary(op string, _ time.Duration, err error) {
	switch op {
	case "save":
		b.SaveCount.Add(1)
	case "load":
		b.LoadCount.Add(1)
	}
	if err != nil {
		b.LibraryErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EncodeCount:      b.EncodeCount.Load(),
		EncodeErrors:     b.EncodeErrors.Load(),
		EncodeSymbols:    b.EncodeSymbols.Load(),
		EncodeAvgNanos:   avg(b.EncodeTotalNanos.Load(), b.EncodeCount.Load()),
		DistanceCount:    b.DistanceCount.Load(),
		DistanceErrors:   b.DistanceErrors.Load(),
		DistanceAvgNanos: avg(b.DistanceNanos.Load(), b.DistanceCount.Load()),
		BatchCount:       b.BatchCount.Load(),
		BatchErrors:      b.BatchErrors.Load(),
		BatchPairs:       b.BatchPairs.Load(),
		BatchAvgNanos:    avg(b.BatchTotalNanos.Load(), b.BatchCount.Load()),
		SaveCount:        b.SaveCount.Load(),
		LoadCount:        b.LoadCount.Load(),
		LibraryErrors:    b.LibraryErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EncodeCount      int64
	EncodeErrors     int64
	EncodeSymbols    int64
	EncodeAvgNanos   int64
	DistanceCount    int64
	DistanceErrors   int64
	DistanceAvgNanos int64
	BatchCount       int64
	BatchErrors      int64
	BatchPairs       int64
	BatchAvgNanos    int64
	SaveCount        int64
	LoadCount        int64
	LibraryErrors    int64
}
