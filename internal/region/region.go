// Package region reserves the single zero-initialized memory region that an
// arena carves into blocks. On systems with anonymous mmap the region comes
// straight from the kernel and never moves; elsewhere it falls back to a Go
// heap slice.
package region

import "errors"

// ErrInvalidSize is returned when a reservation of zero or fewer bytes is requested.
var ErrInvalidSize = errors.New("region: size must be positive")
