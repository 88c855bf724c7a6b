// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Fixed construction-time configuration for the virtual page allocator.
// All fields are immutable once an allocator is built from them.

package control

import (
	"fmt"
	"math/bits"

	"github.com/momentics/hioload-vpages/api"
)

// Defaults match a 64 GiB reservation of 4 KiB pages.
const (
	DefaultPageSize      = 4096
	DefaultCapacityPages = 1 << 24

	// maxCapacityPages keeps every page index below the slot reservation
	// flag bit (bit 31).
	maxCapacityPages = 1 << 31
)

// Config selects the page size and reservation capacity for one allocator
// instance. The zero value means "use defaults".
type Config struct {
	// PageSize is the fixed page size in bytes; power of two.
	PageSize int

	// CapacityPages is the total number of pages in the reservation;
	// power of two, so the ring index mask and modulo wrap coincide.
	CapacityPages uint32
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.CapacityPages == 0 {
		c.CapacityPages = DefaultCapacityPages
	}
	return c
}

// Validate checks the configuration invariants, including that the derived
// ring index mask width equals exactly ceil(log2(capacity)). Capacity and
// mask are derived from one field so they cannot drift apart, but the check
// stays as a permanent guard on the counter encoding.
func (c Config) Validate() error {
	if c.PageSize <= 0 || c.PageSize&(c.PageSize-1) != 0 {
		return fmt.Errorf("control: %w: %d", api.ErrInvalidPageSize, c.PageSize)
	}
	if c.CapacityPages == 0 || c.CapacityPages&(c.CapacityPages-1) != 0 {
		return fmt.Errorf("control: %w: %d", api.ErrInvalidCapacity, c.CapacityPages)
	}
	if uint64(c.CapacityPages) > maxCapacityPages {
		return fmt.Errorf("control: %w: %d", api.ErrCapacityTooLarge, c.CapacityPages)
	}
	if uint64(1)<<uint(c.IndexBits()) != uint64(c.CapacityPages) {
		return fmt.Errorf("control: %w: capacity %d, width %d",
			api.ErrIndexWidthMismatch, c.CapacityPages, c.IndexBits())
	}
	return nil
}

// IndexBits returns the ring index field width, ceil(log2(capacity)).
func (c Config) IndexBits() int {
	return bits.Len32(c.CapacityPages - 1)
}

// IndexMask returns the mask for the ring index field.
func (c Config) IndexMask() uint32 {
	return c.CapacityPages - 1
}

// ReservationBytes returns the total span size of the reservation.
func (c Config) ReservationBytes() int64 {
	return int64(c.PageSize) * int64(c.CapacityPages)
}
