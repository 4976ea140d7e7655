package hammy

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	boom := errors.New("boom")

	m.RecordEncode(10, 2*time.Microsecond, nil)
	m.RecordEncode(5, 4*time.Microsecond, boom)
	m.RecordDistance(100*time.Nanosecond, nil)
	m.RecordBatch("matrix", 45, time.Millisecond, nil)
	m.RecordBatch("query", 10, 3*time.Millisecond, boom)
	m.RecordLibrary("save", time.Millisecond, nil)
	m.RecordLibrary("load", time.Millisecond, boom)

	s := m.GetStats()
	assert.Equal(t, int64(2), s.EncodeCount)
	assert.Equal(t, int64(1), s.EncodeErrors)
	assert.Equal(t, int64(10), s.EncodeSymbols)
	assert.Equal(t, int64(3000), s.EncodeAvgNanos)
	assert.Equal(t, int64(1), s.DistanceCount)
	assert.Equal(t, int64(100), s.DistanceAvgNanos)
	assert.Equal(t, int64(2), s.BatchCount)
	assert.Equal(t, int64(1), s.BatchErrors)
	assert.Equal(t, int64(45), s.BatchPairs)
	assert.Equal(t, int64(2_000_000), s.BatchAvgNanos)
	assert.Equal(t, int64(1), s.SaveCount)
	assert.Equal(t, int64(1), s.LoadCount)
	assert.Equal(t, int64(1), s.LibraryErrors)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	s := (&BasicMetricsCollector{}).GetStats()
	assert.Zero(t, s.EncodeAvgNanos)
	assert.Zero(t, s.DistanceAvgNanos)
	assert.Zero(t, s.BatchAvgNanos)
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.WithCount(3).WithLength(12).LogBatch(ctx, "matrix", 3, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "batch completed")
	assert.Contains(t, buf.String(), "count=3")
	assert.Contains(t, buf.String(), "length=12")
	assert.Contains(t, buf.String(), "op=matrix")

	buf.Reset()
	l.LogDistance(ctx, 8, 0, &LengthMismatchError{A: 8, B: 7})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "8 != 7")

	buf.Reset()
	l.LogEncode(ctx, 4, nil)
	assert.Contains(t, buf.String(), "level=DEBUG")

	NoopLogger().LogSave(ctx, "x", "", errors.New("ignored"))
}
