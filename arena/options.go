package arena

import (
	"io"
	"os"

	"github.com/joshuapare/memarena/internal/region"
)

// Runtime trace toggle - controlled by MEMARENA_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMARENA_LOG_ALLOC") != ""

// Options controls how an Arena obtains its region and whether it traces.
type Options struct {
	// PageSize is the granularity the region size is rounded up to.
	// Must be a power of two.
	// Default: 0 (the operating system page size)
	PageSize int

	// Reserve obtains the zero-initialized region. It is called exactly once,
	// from New, with the page-rounded size.
	// Default: nil (anonymous private mmap, see internal/region)
	Reserve func(size int) ([]byte, error)

	// Trace receives one line per split, merge and failed request.
	// Default: os.Stderr when MEMARENA_LOG_ALLOC is set, otherwise nil
	Trace io.Writer
}

// DefaultOptions returns the options used when New is given nil.
func DefaultOptions() Options {
	opts := Options{}
	if logAlloc {
		opts.Trace = os.Stderr
	}
	return opts
}

func (o Options) pageSize() int {
	if o.PageSize == 0 {
		return region.PageSize()
	}
	return o.PageSize
}

func (o Options) reserve(size int) ([]byte, error) {
	if o.Reserve == nil {
		return region.Reserve(size)
	}
	return o.Reserve(size)
}
