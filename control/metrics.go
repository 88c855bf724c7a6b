// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for allocator monitoring.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-vpages/api"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// CollectPageAlloc copies an allocator stats snapshot into the registry
// under the given key prefix.
func (mr *MetricsRegistry) CollectPageAlloc(prefix string, st api.PageAllocStats) {
	mr.mu.Lock()
	mr.metrics[prefix+".total_alloc"] = st.TotalAlloc
	mr.metrics[prefix+".total_free"] = st.TotalFree
	mr.metrics[prefix+".in_use"] = st.InUse
	mr.metrics[prefix+".free_pages"] = st.FreePages
	mr.metrics[prefix+".capacity"] = st.Capacity
	mr.metrics[prefix+".handoff_waits"] = st.HandoffWaits
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}
