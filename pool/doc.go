// Package pool
// Author: momentics <momentics@gmail.com>
//
// Lock-free virtual page allocator for hioload-vpages.
// One packed atomic counter linearizes all Allocate/Free calls over a ring
// of free page indices; page memory lives in a single arena reservation.
// See counter.go, slotring.go, vpagealloc.go for implementation details.
package pool
