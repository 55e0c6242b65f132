package arena

import (
	"fmt"

	"github.com/joshuapare/memarena/internal/format"
)

// Alloc hands out a payload of at least size bytes from the best-fitting
// Free block.
//
// The request is rounded up to a multiple of Alignment. The returned slice
// covers the whole payload of the chosen block, which is larger than the
// rounded request when the leftover slack was too small to split off.
// When no Free block fits, Alloc returns ErrOutOfMemory and leaves the
// chain untouched.
func (a *Arena) Alloc(size int) (Ref, []byte, error) {
	a.stats.AllocCalls++

	if size <= 0 {
		a.stats.AllocFailures++
		return NilRef, nil, fmt.Errorf("%w: alloc of %d bytes", ErrInvalidSize, size)
	}
	// Anything larger than the region cannot fit; checking first keeps the
	// rounding below from overflowing.
	if size > a.Capacity() {
		a.stats.AllocFailures++
		a.tracef("[ALLOC] request=%d exceeds capacity=%d", size, a.Capacity())
		return NilRef, nil, fmt.Errorf("%w: request %d exceeds capacity %d", ErrOutOfMemory, size, a.Capacity())
	}
	need := format.Align4(size)

	off, h, ok := a.bestFit(need)
	if !ok {
		a.stats.AllocFailures++
		a.tracef("[ALLOC] request=%d need=%d: no free block fits", size, need)
		return NilRef, nil, fmt.Errorf("%w: no free block of %d bytes", ErrOutOfMemory, need)
	}

	slack := int(h.Size) - need
	switch {
	case slack == 0:
		a.stats.ExactFits++

	case slack >= format.HeaderSize:
		// Split: head becomes the allocation, tail becomes a new Free block.
		a.stats.SplitCount++
		tail := off + format.HeaderSize + need
		format.PutHeader(a.data, tail, format.Header{
			Next:   h.Next,
			Size:   uint32(slack - format.HeaderSize),
			Status: format.StatusFree,
		})
		h.Next = uint32(tail)
		h.Size = uint32(need)
		a.tracef("[SPLIT] block=%d need=%d tail=%d tail_size=%d", off, need, tail, slack-format.HeaderSize)

	default:
		// Slack cannot hold a header: hand out the whole block.
		a.stats.WholeBlocks++
		need = int(h.Size)
	}

	h.Status = format.StatusBusy
	format.PutHeader(a.data, off, h)
	a.stats.BytesAllocated += int64(need)

	return Ref(off + format.HeaderSize), a.payload(off, need), nil
}

// bestFit scans the whole chain for the Free block with the least slack for
// need. Ties go to the block found last, i.e. the higher address.
func (a *Arena) bestFit(need int) (int, format.Header, bool) {
	best := -1
	var bestHdr format.Header
	bestSlack := 0

	for off, h := range a.chain() {
		if h.Status != format.StatusFree || int(h.Size) < need {
			continue
		}
		slack := int(h.Size) - need
		if best < 0 || slack <= bestSlack {
			best, bestHdr, bestSlack = off, h, slack
		}
	}
	return best, bestHdr, best >= 0
}
