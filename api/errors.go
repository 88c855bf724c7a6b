// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types for the hioload-vpages library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrInvalidPageSize    = fmt.Errorf("page size must be a positive power of two")
	ErrInvalidCapacity    = fmt.Errorf("capacity must be a positive power of two")
	ErrCapacityTooLarge   = fmt.Errorf("capacity exceeds the ring index field width")
	ErrIndexWidthMismatch = fmt.Errorf("ring index mask width does not match capacity")
	ErrForeignPage        = fmt.Errorf("page does not belong to this reservation")
	ErrPageMisaligned     = fmt.Errorf("page address is not page-aligned")
	ErrIndexOutOfRange    = fmt.Errorf("page index out of range")
	ErrArenaClosed        = fmt.Errorf("arena reservation already released")
)
