// File: pool/vpagealloc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// VirtualPageAllocator: lock-free page-granularity backing allocator over a
// single pre-reserved address range. Allocate claims a ring slot through
// the packed usage counter, resolves it to a page index, and grants access
// rights; Free reverses the sequence.

package pool

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/momentics/hioload-vpages/api"
	"github.com/momentics/hioload-vpages/arena"
	"github.com/momentics/hioload-vpages/control"
)

// fatalNoFreePages terminates the process on pool exhaustion. An allocator
// that cannot produce a page has no fallback at this layer; a nil return
// would flow unchecked into every layer above. Tests swap the hook; any
// replacement must not return.
var fatalNoFreePages = func() {
	fmt.Fprintln(os.Stderr, "hioload-vpages: no free pages left, terminating")
	os.Exit(2)
}

// VirtualPageAllocator hands out fixed-size pages from one arena
// reservation. Construct exactly one instance per reservation and keep it
// for the life of the process; there is no teardown path.
//
// All methods are safe for concurrent use from any number of goroutines.
// The only wait anywhere is the bounded hand-off spin in slotRing.take.
type VirtualPageAllocator struct {
	arena   *arena.Arena
	ring    *slotRing
	counter usageCounter

	totalAlloc   atomic.Uint64
	totalFree    atomic.Uint64
	handoffWaits atomic.Uint64

	trace api.TraceSink // optional, nil when tracing is off
}

// New builds an allocator from cfg, reserving the address range and
// pre-filling the free-index ring with the identity permutation.
func New(cfg control.Config) (*VirtualPageAllocator, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a, err := arena.Reserve(cfg.PageSize, cfg.CapacityPages)
	if err != nil {
		return nil, err
	}
	v := &VirtualPageAllocator{
		arena: a,
		ring:  newSlotRing(cfg.CapacityPages),
	}
	v.counter.init(cfg.CapacityPages)
	return v, nil
}

// SetTraceSink installs an event sink. Call before the allocator is shared
// across goroutines; the hot path reads the field without synchronization.
func (v *VirtualPageAllocator) SetTraceSink(sink api.TraceSink) {
	v.trace = sink
}

// Allocate claims one free page and returns it with read/write access
// granted. The returned slice is page-sized and page-aligned. Terminates
// the process when no free pages remain.
func (v *VirtualPageAllocator) Allocate() []byte {
	slot, ok := v.counter.claimOne()
	if !ok {
		fatalNoFreePages()
	}

	pageIndex, spins := v.ring.take(slot)
	if spins > 0 {
		v.handoffWaits.Add(1)
	}

	if err := v.arena.Grant(pageIndex); err != nil {
		panic(fmt.Sprintf("pool: grant page %d: %v", pageIndex, err))
	}
	v.totalAlloc.Add(1)
	if v.trace != nil {
		v.trace.RecordAlloc(pageIndex)
	}
	return v.arena.Page(pageIndex)
}

// Free returns a page obtained from Allocate on this instance. Access
// rights are revoked first, so a stray late access faults instead of
// corrupting reused memory. Double-free and foreign slices are undefined
// behavior; the checked index conversion panics on the misuse it can see.
func (v *VirtualPageAllocator) Free(page []byte) {
	pageIndex, err := v.arena.IndexOf(page)
	if err != nil {
		panic(fmt.Sprintf("pool: free: %v", err))
	}
	if err := v.arena.Revoke(pageIndex); err != nil {
		panic(fmt.Sprintf("pool: revoke page %d: %v", pageIndex, err))
	}

	slot := v.counter.release()
	v.ring.publish(slot, pageIndex)

	v.totalFree.Add(1)
	if v.trace != nil {
		v.trace.RecordFree(pageIndex)
	}
}

// FreePages returns the current number of free pages.
func (v *VirtualPageAllocator) FreePages() uint32 {
	return v.counter.freePages()
}

// Capacity returns the total number of pages in the reservation.
func (v *VirtualPageAllocator) Capacity() uint32 {
	return v.arena.Capacity()
}

// PageSize returns the fixed page size in bytes.
func (v *VirtualPageAllocator) PageSize() int {
	return v.arena.PageSize()
}

// Stats returns a point-in-time snapshot of allocation counters.
func (v *VirtualPageAllocator) Stats() api.PageAllocStats {
	totalAlloc := int64(v.totalAlloc.Load())
	totalFree := int64(v.totalFree.Load())
	return api.PageAllocStats{
		TotalAlloc:   totalAlloc,
		TotalFree:    totalFree,
		InUse:        totalAlloc - totalFree,
		FreePages:    int64(v.counter.freePages()),
		Capacity:     int64(v.arena.Capacity()),
		HandoffWaits: int64(v.handoffWaits.Load()),
	}
}

// Ensure compile-time compliance.
var _ api.PageAllocator = (*VirtualPageAllocator)(nil)
