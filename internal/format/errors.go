package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadStatus indicates a status byte other than StatusFree or StatusBusy.
	ErrBadStatus = errors.New("format: unknown block status")
	// ErrMisaligned indicates a header offset or payload size off the Alignment grid.
	ErrMisaligned = errors.New("format: misaligned block")
)
