// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

// Property-based concurrent allocator tests over the public API.

package pool_test

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vpages/control"
	"github.com/momentics/hioload-vpages/pool"
)

func TestAllocator_PropertyUniqueness(t *testing.T) {
	const capacity = 64
	const workers = 8
	const perWorker = capacity / workers

	v, err := pool.New(control.Config{PageSize: 4096, CapacityPages: capacity})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mtx sync.Mutex
	addrs := make(map[uintptr]struct{}, capacity)

	// Outstanding allocations from parallel goroutines never alias.
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				p := v.Allocate()
				a := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
				mtx.Lock()
				addrs[a] = struct{}{}
				mtx.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, addrs, capacity, "duplicate page handed out")
	require.EqualValues(t, 0, v.FreePages())
}

func TestAllocator_PropertyConservation(t *testing.T) {
	const capacity = 64
	const workers = 8
	const batch = 4
	const rounds = 500

	v, err := pool.New(control.Config{PageSize: 4096, CapacityPages: capacity})
	require.NoError(t, err)

	// Each worker repeatedly allocates a batch and frees that same batch.
	// workers*batch stays below capacity so exhaustion cannot trigger.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pages := make([][]byte, batch)
			for r := 0; r < rounds; r++ {
				for i := range pages {
					pages[i] = v.Allocate()
					pages[i][0] = byte(i) // touch to prove access
				}
				for i := range pages {
					v.Free(pages[i])
				}
			}
		}()
	}
	wg.Wait()

	st := v.Stats()
	require.EqualValues(t, capacity, v.FreePages())
	require.Equal(t, st.TotalAlloc, st.TotalFree)
	require.EqualValues(t, workers*batch*rounds, st.TotalAlloc)
	require.EqualValues(t, 0, st.InUse)
}

func TestAllocator_StatsSnapshot(t *testing.T) {
	v, err := pool.New(control.Config{PageSize: 4096, CapacityPages: 16})
	require.NoError(t, err)

	p1 := v.Allocate()
	p2 := v.Allocate()
	v.Free(p1)

	st := v.Stats()
	require.EqualValues(t, 2, st.TotalAlloc)
	require.EqualValues(t, 1, st.TotalFree)
	require.EqualValues(t, 1, st.InUse)
	require.EqualValues(t, 15, st.FreePages)
	require.EqualValues(t, 16, st.Capacity)

	v.Free(p2)
}

func TestAllocator_TraceSink(t *testing.T) {
	v, err := pool.New(control.Config{PageSize: 4096, CapacityPages: 8})
	require.NoError(t, err)

	tb := control.NewTraceBuffer(16)
	v.SetTraceSink(tb)

	p := v.Allocate()
	v.Free(p)

	events := tb.Snapshot()
	require.Len(t, events, 2)
	require.Equal(t, control.TraceAlloc, events[0].Op)
	require.Equal(t, control.TraceFree, events[1].Op)
	require.Equal(t, events[0].PageIndex, events[1].PageIndex)
}

func TestAllocator_MetricsCollection(t *testing.T) {
	v, err := pool.New(control.Config{PageSize: 4096, CapacityPages: 8})
	require.NoError(t, err)

	p := v.Allocate()
	defer v.Free(p)

	mr := control.NewMetricsRegistry()
	mr.CollectPageAlloc("vpages", v.Stats())

	snap := mr.GetSnapshot()
	require.EqualValues(t, int64(1), snap["vpages.total_alloc"])
	require.EqualValues(t, int64(7), snap["vpages.free_pages"])
	require.EqualValues(t, int64(8), snap["vpages.capacity"])
}
