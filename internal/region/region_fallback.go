//go:build !linux && !darwin && !freebsd

package region

import (
	"fmt"
	"os"
)

// PageSize returns the operating system page size.
func PageSize() int {
	return os.Getpagesize()
}

// Reserve allocates size zeroed bytes on the Go heap when anonymous mmap is
// not available.
func Reserve(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return make([]byte, size), nil
}
