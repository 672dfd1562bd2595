package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Closer flushes and stops a log handler.
type Closer interface {
	Close()
}

type nopCloser struct{}

func (nopCloser) Close() {}

// AsyncHandler hands records to a pool of workers over a buffered channel
// so request goroutines never block on log I/O. Records are dropped, and
// counted, when the buffer is full.
type AsyncHandler struct {
	inner  slog.Handler
	shared *asyncShared
}

// asyncShared is the state common to a handler and every derivative
// created by WithAttrs or WithGroup.
type asyncShared struct {
	mu      sync.RWMutex // guards closed against sends on a closed ch
	closed  bool
	ch      chan asyncRecord
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// asyncRecord pairs a record with the handler chain that must render it,
// since derived handlers carry their own attrs and groups.
type asyncRecord struct {
	h   slog.Handler
	rec slog.Record
}

// NewAsyncHandler creates an AsyncHandler with the given buffer size and worker count.
func NewAsyncHandler(inner slog.Handler, buffer, workers int) *AsyncHandler {
	s := &asyncShared{ch: make(chan asyncRecord, buffer)}
	for range workers {
		s.wg.Add(1)
		go s.drain()
	}
	return &AsyncHandler{inner: inner, shared: s}
}

func (s *asyncShared) drain() {
	defer s.wg.Done()
	for r := range s.ch {
		_ = r.h.Handle(context.Background(), r.rec)
	}
}

// Enabled delegates to the inner handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle enqueues the record. Drops if the buffer is full or the handler
// is closed.
func (h *AsyncHandler) Handle(_ context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	h.shared.mu.RLock()
	defer h.shared.mu.RUnlock()
	if h.shared.closed {
		h.shared.dropped.Add(1)
		return nil
	}
	select {
	case h.shared.ch <- asyncRecord{h: h.inner, rec: rec.Clone()}:
	default:
		h.shared.dropped.Add(1)
	}
	return nil
}

// WithAttrs returns a handler writing through the same buffer.
func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{inner: h.inner.WithAttrs(attrs), shared: h.shared}
}

// WithGroup returns a handler writing through the same buffer.
func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{inner: h.inner.WithGroup(name), shared: h.shared}
}

// DroppedCount returns the number of records dropped so far.
func (h *AsyncHandler) DroppedCount() int64 {
	return h.shared.dropped.Load()
}

// Close stops accepting records and waits until the workers drain the
// buffer. Safe to call more than once.
func (h *AsyncHandler) Close() {
	h.shared.mu.Lock()
	if h.shared.closed {
		h.shared.mu.Unlock()
		return
	}
	h.shared.closed = true
	close(h.shared.ch)
	h.shared.mu.Unlock()
	h.shared.wg.Wait()
}
