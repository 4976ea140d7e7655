package hammy

import (
	"log/slog"

	"github.com/hupe1980/hammy/library"
	"github.com/hupe1980/hammy/nucleotide"
	"github.com/hupe1980/hammy/resource"
)

type options struct {
	casePolicy       nucleotide.CasePolicy
	concurrency      int
	controller       *resource.Controller
	compression      library.Compression
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Hammy engine.
type Option func(*options)

// WithCasePolicy sets how lowercase input is treated.
// The default, nucleotide.CaseSensitive, rejects lowercase symbols.
func WithCasePolicy(p nucleotide.CasePolicy) Option {
	return func(o *options) {
		o.casePolicy = p
	}
}

// WithConcurrency caps the worker goroutines of batch jobs.
// Values <= 0 use runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithResourceController charges batch jobs and library transfers against rc.
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   512 << 20, // caps matrix size
//	    MaxConcurrentJobs:  2,
//	    IOLimitBytesPerSec: 100 << 20,
//	})
//	h := hammy.New(hammy.WithResourceController(rc))
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithCompression sets the segment compression used by Save. Default: library.CompressionLZ4.
func WithCompression(c library.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hammy.BasicMetricsCollector{}
//	h := hammy.New(hammy.WithMetricsCollector(metrics))
//	// ... use h ...
//	stats := metrics.GetStats()
//	fmt.Printf("Distances: %d, Avg latency: %dns\n", stats.DistanceCount, stats.DistanceAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := hammy.NewJSONLogger(slog.LevelInfo)
//	h := hammy.New(hammy.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		casePolicy:       nucleotide.CaseSensitive,
		compression:      library.CompressionLZ4,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
