package arena

import (
	"fmt"
	"io"
	"iter"
	"unsafe"

	"github.com/joshuapare/memarena/internal/format"
)

// Arena is a best-fit allocator over one fixed region.
// The first block always starts at offset 0 of data.
type Arena struct {
	data  []byte
	trace io.Writer

	// Statistics for testing and instrumentation
	stats Stats
}

// New reserves a region of at least size bytes and returns an Arena holding
// a single Free block that spans all of it.
//
// The size is rounded up to a multiple of the page size. Options may be nil,
// in which case DefaultOptions is used.
func New(size int, opts *Options) (*Arena, error) {
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: region of %d bytes", ErrInvalidSize, size)
	}

	pageSize := opts.pageSize()
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		return nil, fmt.Errorf("%w: page size %d is not a power of two", ErrInvalidSize, pageSize)
	}
	if size > format.MaxArenaSize {
		return nil, fmt.Errorf("%w: region of %d bytes exceeds %d", ErrInvalidSize, size, format.MaxArenaSize)
	}
	regionSize := format.AlignPage(size, pageSize)
	if regionSize > format.MaxArenaSize || regionSize < format.HeaderSize {
		return nil, fmt.Errorf("%w: rounded region of %d bytes", ErrInvalidSize, regionSize)
	}

	data, err := opts.reserve(regionSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOSAllocationFailure, err)
	}
	if len(data) != regionSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrOSAllocationFailure, len(data), regionSize)
	}

	a := &Arena{
		data:  data,
		trace: opts.Trace,
	}

	// To begin with, there is only one big, free block
	format.PutHeader(a.data, 0, format.Header{
		Next:   format.Terminal,
		Size:   uint32(regionSize - format.HeaderSize),
		Status: format.StatusFree,
	})
	a.tracef("[INIT] requested=%d region=%d payload=%d", size, regionSize, regionSize-format.HeaderSize)

	return a, nil
}

// Size returns the total number of bytes in the region, headers included.
func (a *Arena) Size() int {
	return len(a.data)
}

// Capacity returns the largest request a fresh arena can satisfy.
func (a *Arena) Capacity() int {
	return len(a.data) - format.HeaderSize
}

// Base returns the address of the first byte of the region.
func (a *Arena) Base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.data)))
}

// Payload returns the payload bytes of the Busy block starting at ref.
func (a *Arena) Payload(ref Ref) ([]byte, error) {
	off, _, err := a.find(ref)
	if err != nil {
		return nil, err
	}
	h := format.ReadHeader(a.data, off)
	if h.Status != format.StatusBusy {
		return nil, fmt.Errorf("%w: block at %d is free", ErrInvalidPointer, off)
	}
	return a.payload(off, int(h.Size)), nil
}

// chain yields the header offset and decoded header of every block in address order.
func (a *Arena) chain() iter.Seq2[int, format.Header] {
	return func(yield func(int, format.Header) bool) {
		off := 0
		for {
			h := format.ReadHeader(a.data, off)
			if !yield(off, h) || h.Last() {
				return
			}
			off = int(h.Next)
		}
	}
}

// find locates the block whose payload starts at ref, returning its header
// offset and the offset of its predecessor (-1 for the first block).
func (a *Arena) find(ref Ref) (off, prev int, err error) {
	if ref == NilRef {
		return 0, 0, fmt.Errorf("%w: nil reference", ErrInvalidPointer)
	}
	target := int(ref) - format.HeaderSize
	// ref == len(a.data) is valid: a zero-payload last block starts its payload there.
	if target < 0 || int(ref) > len(a.data) {
		return 0, 0, fmt.Errorf("%w: reference %d outside region of %d bytes", ErrInvalidPointer, ref, len(a.data))
	}

	prev = -1
	for cur := range a.chain() {
		if cur == target {
			return cur, prev, nil
		}
		// Blocks are address-ordered: once past the target it cannot match.
		if cur > target {
			break
		}
		prev = cur
	}
	return 0, 0, fmt.Errorf("%w: no block starts at reference %d", ErrInvalidPointer, ref)
}

// payload returns the n payload bytes of the block at off, capacity clipped
// so appends cannot spill into the next header.
func (a *Arena) payload(off, n int) []byte {
	start := off + format.HeaderSize
	return a.data[start : start+n : start+n]
}

func (a *Arena) tracef(msg string, args ...any) {
	if a.trace == nil {
		return
	}
	fmt.Fprintf(a.trace, msg+"\n", args...)
}
