package resource

import (
	"context"
	"io"
)

// Reader wraps r so every Read is charged against the IO budget.
func (c *Controller) Reader(ctx context.Context, r io.Reader) io.Reader {
	if c == nil || c.ioLimiter == nil {
		return r
	}
	return &rateLimitedReader{ctx: ctx, r: r, c: c}
}

// Writer wraps w so every Write waits for IO budget before it is passed on.
func (c *Controller) Writer(ctx context.Context, w io.Writer) io.Writer {
	if c == nil || c.ioLimiter == nil {
		return w
	}
	return &rateLimitedWriter{ctx: ctx, w: w, c: c}
}

type rateLimitedReader struct {
	ctx context.Context
	r   io.Reader
	c   *Controller
}

// Read charges the bytes actually read, so a large buffer never over-waits.
func (r *rateLimitedReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		if werr := r.c.AcquireIO(r.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

type rateLimitedWriter struct {
	ctx context.Context
	w   io.Writer
	c   *Controller
}

func (w *rateLimitedWriter) Write(p []byte) (int, error) {
	if err := w.c.AcquireIO(w.ctx, len(p)); err != nil {
		return 0, err
	}
	return w.w.Write(p)
}
