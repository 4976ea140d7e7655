package batch

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/hupe1980/hammy/resource"
)

type options struct {
	concurrency int
	controller  *resource.Controller
	logger      *slog.Logger
}

// Option configures a batch call.
type Option func(*options)

// WithConcurrency sets the maximum number of worker goroutines.
// Values <= 0 use runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithController charges jobs and result memory against a resource controller.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithLogger sets the logger for job summaries. Nil discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
