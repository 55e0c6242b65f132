//go:build linux || darwin || freebsd

package region

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// PageSize returns the operating system page size.
func PageSize() int {
	return unix.Getpagesize()
}

// Reserve maps size bytes of private anonymous memory. The kernel hands the
// pages out zero-filled, so the region needs no clearing before use.
func Reserve(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	data, err := unix.Mmap(
		-1,
		0,
		size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %d bytes: %w", size, err)
	}
	return data, nil
}
