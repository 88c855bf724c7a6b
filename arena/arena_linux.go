//go:build linux

// File: arena/arena_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux reservation backend: anonymous PROT_NONE mapping with MAP_NORESERVE,
// so the span costs address space only until pages are granted.

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func reserveSpan(pageSize, capacity int) ([]byte, bool, error) {
	if sys := unix.Getpagesize(); pageSize%sys != 0 {
		return nil, false, fmt.Errorf("page size %d is not a multiple of the system page size %d", pageSize, sys)
	}
	span, err := unix.Mmap(-1, 0, pageSize*capacity, unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_NORESERVE)
	if err != nil {
		return nil, false, fmt.Errorf("mmap: %w", err)
	}
	return span, true, nil
}

func grantSpan(page []byte) error {
	if err := unix.Mprotect(page, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("mprotect rw: %w", err)
	}
	return nil
}

func revokeSpan(page []byte) error {
	if err := unix.Mprotect(page, unix.PROT_NONE); err != nil {
		return fmt.Errorf("mprotect none: %w", err)
	}
	return nil
}

func releaseSpan(span []byte) error {
	if err := unix.Munmap(span); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
