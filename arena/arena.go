// File: arena/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Arena owns one contiguous span of virtual address space and exposes
// checked index/address conversions plus per-page access-right toggling.

package arena

import (
	"fmt"
	"unsafe"

	"github.com/momentics/hioload-vpages/api"
)

// Arena is a contiguous reservation of capacity*pageSize bytes of virtual
// address space. The constructing allocator holds the only reference to the
// span for its entire lifetime; callers only ever see page slices and
// indices.
type Arena struct {
	pageSize int
	capacity uint32
	span     []byte
	mapped   bool // span is an OS mapping rather than heap memory
}

// Reserve maps a span of capacity*pageSize bytes with no access rights.
// pageSize must be a positive power of two and a multiple of the system
// page size on platforms that enforce protection at page granularity.
func Reserve(pageSize int, capacity uint32) (*Arena, error) {
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		return nil, fmt.Errorf("arena: %w: %d", api.ErrInvalidPageSize, pageSize)
	}
	if capacity == 0 {
		return nil, fmt.Errorf("arena: %w: %d", api.ErrInvalidCapacity, capacity)
	}
	span, mapped, err := reserveSpan(pageSize, int(capacity))
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d pages of %d bytes: %w", capacity, pageSize, err)
	}
	return &Arena{
		pageSize: pageSize,
		capacity: capacity,
		span:     span,
		mapped:   mapped,
	}, nil
}

// PageSize returns the fixed page size in bytes.
func (a *Arena) PageSize() int { return a.pageSize }

// Capacity returns the number of pages in the reservation.
func (a *Arena) Capacity() uint32 { return a.capacity }

// Page returns the full slice for the page at index. The slice carries no
// access rights until Grant is called for the same index.
func (a *Arena) Page(index uint32) []byte {
	if index >= a.capacity {
		panic(fmt.Sprintf("arena: %v: %d >= %d", api.ErrIndexOutOfRange, index, a.capacity))
	}
	off := int(index) * a.pageSize
	return a.span[off : off+a.pageSize : off+a.pageSize]
}

// IndexOf converts a page slice back to its dense index, verifying that the
// slice lies inside this reservation and starts on a page boundary.
func (a *Arena) IndexOf(page []byte) (uint32, error) {
	if a.span == nil {
		return 0, api.ErrArenaClosed
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.span)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(page)))
	if p < base || p >= base+uintptr(len(a.span)) {
		return 0, api.ErrForeignPage
	}
	off := p - base
	if off%uintptr(a.pageSize) != 0 {
		return 0, api.ErrPageMisaligned
	}
	return uint32(off / uintptr(a.pageSize)), nil
}

// Grant enables read/write access on the page at index, committing physical
// memory on first touch.
func (a *Arena) Grant(index uint32) error {
	return grantSpan(a.Page(index))
}

// Revoke removes all access rights on the page at index. A later stray
// access faults.
func (a *Arena) Revoke(index uint32) error {
	return revokeSpan(a.Page(index))
}

// Close releases the reservation. Only tests and short-lived tooling call
// this; a live allocator keeps its arena until process exit.
func (a *Arena) Close() error {
	if a.span == nil {
		return api.ErrArenaClosed
	}
	span := a.span
	a.span = nil
	if !a.mapped {
		return nil
	}
	return releaseSpan(span)
}
