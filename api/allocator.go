// File: api/allocator.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract page allocation API: fixed-size virtual pages handed
// out and reclaimed from a single pre-reserved address range.

package api

// PageAllocator hands out and reclaims fixed-size virtual pages without locks.
type PageAllocator interface {
	// Allocate returns a page-sized, page-aligned region with read/write
	// access granted. Terminates the process when no free pages remain.
	Allocate() []byte

	// Free returns a page previously obtained from Allocate on the same
	// instance. Double-free and foreign slices are undefined behavior.
	Free(page []byte)

	// Stats returns a point-in-time snapshot of allocation counters.
	Stats() PageAllocStats
}

// PageAllocStats holds allocation counters for a PageAllocator.
type PageAllocStats struct {
	TotalAlloc   int64
	TotalFree    int64
	InUse        int64
	FreePages    int64
	Capacity     int64
	HandoffWaits int64
}

// TraceSink receives page lifecycle events from an allocator.
// Implementations must be safe for concurrent use; the allocator invokes
// them on the allocation hot path.
type TraceSink interface {
	RecordAlloc(pageIndex uint32)
	RecordFree(pageIndex uint32)
}
