// control/trace.go
// Author: momentics <momentics@gmail.com>
//
// Bounded trace buffer of recent page lifecycle events. Intended for
// debugging and post-mortem inspection, not for steady-state production
// use: every record takes a mutex.

package control

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-vpages/api"
)

// TraceOp distinguishes event kinds in the trace buffer.
type TraceOp uint8

const (
	TraceAlloc TraceOp = iota
	TraceFree
)

func (op TraceOp) String() string {
	if op == TraceAlloc {
		return "alloc"
	}
	return "free"
}

// TraceEvent is one recorded page transition.
type TraceEvent struct {
	Op        TraceOp
	PageIndex uint32
	At        time.Time
}

// TraceBuffer retains the most recent `limit` events in FIFO order.
// It implements api.TraceSink.
type TraceBuffer struct {
	mu    sync.Mutex
	q     *queue.Queue
	limit int
}

// NewTraceBuffer creates a buffer retaining up to limit events.
func NewTraceBuffer(limit int) *TraceBuffer {
	if limit <= 0 {
		limit = 1024
	}
	return &TraceBuffer{
		q:     queue.New(),
		limit: limit,
	}
}

// RecordAlloc implements api.TraceSink.
func (tb *TraceBuffer) RecordAlloc(pageIndex uint32) {
	tb.record(TraceAlloc, pageIndex)
}

// RecordFree implements api.TraceSink.
func (tb *TraceBuffer) RecordFree(pageIndex uint32) {
	tb.record(TraceFree, pageIndex)
}

func (tb *TraceBuffer) record(op TraceOp, pageIndex uint32) {
	tb.mu.Lock()
	tb.q.Add(TraceEvent{Op: op, PageIndex: pageIndex, At: time.Now()})
	for tb.q.Length() > tb.limit {
		tb.q.Remove()
	}
	tb.mu.Unlock()
}

// Len returns the number of retained events.
func (tb *TraceBuffer) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.q.Length()
}

// Snapshot copies the retained events oldest-first.
func (tb *TraceBuffer) Snapshot() []TraceEvent {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	out := make([]TraceEvent, tb.q.Length())
	for i := range out {
		out[i] = tb.q.Get(i).(TraceEvent)
	}
	return out
}

// Ensure compile-time compliance.
var _ api.TraceSink = (*TraceBuffer)(nil)
