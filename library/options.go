package library

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/hupe1980/hammy/codec"
	"github.com/hupe1980/hammy/resource"
)

type options struct {
	compression Compression
	codec       codec.Codec
	controller  *resource.Controller
	logger      *slog.Logger
	concurrency int
}

// Option configures Save, Load and friends.
type Option func(*options)

// WithCompression sets the segment payload compression for Save. Default: CompressionLZ4.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCodec sets the codec used to write manifests. Default: codec.Default.
// Readers pick the codec recorded in the manifest.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithController throttles blob transfers through the controller's IO budget.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithLogger sets the logger. Nil discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithConcurrency caps parallel segment reads in LoadAll.
// Values <= 0 use runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression: CompressionLZ4,
		codec:       codec.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}
