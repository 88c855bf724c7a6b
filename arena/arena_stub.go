//go:build !linux

// File: arena/arena_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback reservation backend for platforms without the mmap path. The
// span is ordinary heap memory and access-right toggling is a no-op, so
// freed-page faults are not diagnosed here.

package arena

func reserveSpan(pageSize, capacity int) ([]byte, bool, error) {
	return make([]byte, pageSize*capacity), false, nil
}

func grantSpan(page []byte) error { return nil }

func revokeSpan(page []byte) error { return nil }

func releaseSpan(span []byte) error { return nil }
