// File: pool/counter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Packed usage counter: free-page count and ring head index in one
// atomically updated word. This is the single synchronization point that
// linearizes all Allocate/Free calls against each other.

package pool

import "sync/atomic"

// freeCountShift splits the packed word: free count in the upper 32 bits,
// head index in the lower 32, masked to the ring index width.
const freeCountShift = 32

// usageCounter is the packed (freeCount, headIndex) word. Both fields are
// always read and written as one unit; no observable state combines a
// freeCount and headIndex from different committed steps.
//
// Go sync/atomic operations are sequentially consistent, which is strictly
// stronger than the acquire-on-claim / release-on-publish pairing the slot
// hand-off requires.
type usageCounter struct {
	word atomic.Uint64
	mask uint32
	_    [64]byte // Padding for hot/cold separation
}

func packUsage(freeCount, head uint32) uint64 {
	return uint64(freeCount)<<freeCountShift | uint64(head)
}

func usageFreeCount(w uint64) uint32 { return uint32(w >> freeCountShift) }

func usageHead(w uint64, mask uint32) uint32 { return uint32(w) & mask }

// init sets the full pool free with the head at slot zero. capacity must be
// a power of two; mask is capacity-1.
func (c *usageCounter) init(capacity uint32) {
	c.mask = capacity - 1
	c.word.Store(packUsage(capacity, 0))
}

// claimOne pops one logically-free slot: decrements the free count and
// advances the head in a single compare-and-swap. Returns the slot index
// the caller now exclusively owns. ok is false when no free pages remain;
// the check repeats on every retry because a racing caller can exhaust the
// pool between loads.
func (c *usageCounter) claimOne() (slot uint32, ok bool) {
	for {
		old := c.word.Load()
		if usageFreeCount(old) == 0 {
			return 0, false
		}
		next := packUsage(usageFreeCount(old)-1, (uint32(old)+1)&c.mask)
		if c.word.CompareAndSwap(old, next) {
			return usageHead(old, c.mask), true
		}
	}
}

// release grows the free count by one via fetch-and-add and returns the
// tail slot the caller must publish the freed index into:
// (old head + old free count) mod capacity. The raw sum needs no masking
// before the wrap: free count never exceeds capacity, far below the head
// field width.
func (c *usageCounter) release() (slot uint32) {
	old := c.word.Add(1<<freeCountShift) - (1 << freeCountShift)
	return (usageHead(old, c.mask) + usageFreeCount(old)) & c.mask
}

// freePages returns the current free count.
func (c *usageCounter) freePages() uint32 {
	return usageFreeCount(c.word.Load())
}
