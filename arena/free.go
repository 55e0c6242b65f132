package arena

import (
	"fmt"

	"github.com/joshuapare/memarena/internal/format"
)

// Free returns the Busy block whose payload starts at ref to the arena and
// merges it with any Free neighbour.
//
// Free fails with ErrInvalidPointer for NilRef or a reference that does not
// start a payload, and with ErrDoubleFree for a block that is already Free.
// A failed Free changes nothing.
func (a *Arena) Free(ref Ref) error {
	a.stats.FreeCalls++

	off, prev, err := a.find(ref)
	if err != nil {
		a.stats.FreeFailures++
		return err
	}

	h := format.ReadHeader(a.data, off)
	if h.Status == format.StatusFree {
		a.stats.FreeFailures++
		a.tracef("[FREE] block=%d already free", off)
		return fmt.Errorf("%w: block at %d", ErrDoubleFree, off)
	}
	h.Status = format.StatusFree
	a.stats.BytesFreed += int64(h.Size)

	// Backward: fold this block into a Free predecessor.
	if prev >= 0 {
		ph := format.ReadHeader(a.data, prev)
		if ph.Status == format.StatusFree {
			a.stats.CoalesceBackward++
			ph.Size += format.HeaderSize + h.Size
			ph.Next = h.Next
			a.tracef("[MERGE] backward block=%d into=%d size=%d", off, prev, ph.Size)
			off, h = prev, ph
		}
	}

	// Forward: absorb a Free successor into the (possibly merged) block.
	if !h.Last() {
		next := int(h.Next)
		nh := format.ReadHeader(a.data, next)
		if nh.Status == format.StatusFree {
			a.stats.CoalesceForward++
			h.Size += format.HeaderSize + nh.Size
			h.Next = nh.Next
			a.tracef("[MERGE] forward block=%d into=%d size=%d", next, off, h.Size)
		}
	}

	format.PutHeader(a.data, off, h)
	return nil
}
