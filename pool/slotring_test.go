// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package pool

import (
	"testing"
	"time"
)

func TestSlotRing_IdentityPrefill(t *testing.T) {
	r := newSlotRing(16)
	for i, v := range r.snapshot() {
		if slotReserved(v) {
			t.Errorf("slot %d pre-filled with reservation flag set", i)
		}
		if slotPageIndex(v) != uint32(i) {
			t.Errorf("slot %d: got page index %d", i, slotPageIndex(v))
		}
	}
}

func TestSlotRing_TakeMarksReserved(t *testing.T) {
	r := newSlotRing(4)

	idx, spins := r.take(2)
	if idx != 2 {
		t.Errorf("take: got page index %d, want 2", idx)
	}
	if spins != 0 {
		t.Errorf("take on clean slot spun %d times", spins)
	}
	if v := r.snapshot()[2]; !slotReserved(v) {
		t.Error("taken slot not marked reserved")
	}

	r.publish(2, 3)
	if v := r.snapshot()[2]; slotReserved(v) || slotPageIndex(v) != 3 {
		t.Errorf("published slot: got raw value %#x", v)
	}
}

func TestSlotRing_TakeSpinsUntilPublish(t *testing.T) {
	r := newSlotRing(2)

	// Leave slot 0 mid-handoff, then publish from another goroutine.
	r.take(0)
	go func() {
		time.Sleep(2 * time.Millisecond)
		r.publish(0, 1)
	}()

	done := make(chan uint32, 1)
	go func() {
		idx, _ := r.take(0)
		done <- idx
	}()

	select {
	case idx := <-done:
		if idx != 1 {
			t.Errorf("take after publish: got page index %d, want 1", idx)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("take did not observe the published slot")
	}
}

func TestSlotReservedPredicate(t *testing.T) {
	if slotReserved(5) {
		t.Error("clean value reported reserved")
	}
	if !slotReserved(5 | slotReservedFlag) {
		t.Error("flagged value reported clean")
	}
	if slotPageIndex(5|slotReservedFlag) != 5 {
		t.Error("flag not stripped from page index")
	}
}
