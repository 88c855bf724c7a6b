// File: pool/slotring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ring of free page indices. Each slot is one atomic uint32 holding a page
// index plus a reservation flag bit; the packed usage counter decides which
// slots are logically free.

package pool

import (
	"runtime"
	"sync/atomic"
)

// slotReservedFlag marks a slot mid-handoff: claimed by an allocation but
// not yet republished by a free. Page indices stay below this bit.
const slotReservedFlag uint32 = 1 << 31

// slotReserved reports whether a slot value is mid-handoff. A set flag
// means the value is stale, not a legitimate free page index.
func slotReserved(v uint32) bool {
	return v&slotReservedFlag != 0
}

// slotPageIndex strips the reservation flag off a slot value.
func slotPageIndex(v uint32) uint32 {
	return v &^ slotReservedFlag
}

// slotRing is the fixed-capacity circular array of free page indices,
// pre-filled with the identity permutation.
type slotRing struct {
	slots []atomic.Uint32
}

func newSlotRing(capacity uint32) *slotRing {
	r := &slotRing{slots: make([]atomic.Uint32, capacity)}
	for i := range r.slots {
		r.slots[i].Store(uint32(i))
	}
	return r
}

// take reads the page index out of an exclusively-claimed slot and marks
// the slot reserved. When the slot was handed over by a Free whose publish
// store has not landed yet, take spins until the clean value appears; the
// wait is bounded by the remaining latency of that one Free call. spins
// reports how many stale reads occurred.
func (r *slotRing) take(slot uint32) (pageIndex uint32, spins uint64) {
	s := &r.slots[slot]
	for {
		v := s.Load()
		if !slotReserved(v) {
			// Reserve the slot so a later claim of the same slot
			// cannot misread this value before the next publish.
			s.Store(v | slotReservedFlag)
			return slotPageIndex(v), spins
		}
		spins++
		runtime.Gosched()
	}
}

// publish writes a freed page index into the tail slot with the
// reservation flag clear. This store is exactly what a racing take is
// spinning for.
func (r *slotRing) publish(slot, pageIndex uint32) {
	r.slots[slot].Store(pageIndex)
}

// snapshot copies the raw slot values; tests use it to check the free-set
// permutation invariant on a quiescent ring.
func (r *slotRing) snapshot() []uint32 {
	out := make([]uint32, len(r.slots))
	for i := range r.slots {
		out[i] = r.slots[i].Load()
	}
	return out
}
