package arena

import (
	"fmt"

	"github.com/joshuapare/memarena/internal/format"
)

// ValidationError describes the first structural invariant found broken.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Check walks the chain and verifies:
//   - the first block starts at the region base
//   - every header decodes with a known status and a size that is a multiple of 4
//   - each block starts exactly where its predecessor ends (ordered, no gaps, no overlaps)
//   - the last block ends at the region end and carries the terminal link
//   - no two adjacent blocks are both Free
//
// It returns nil when all hold.
func (a *Arena) Check() error {
	off := 0
	prevFree := false
	covered := 0

	for {
		h, err := format.DecodeHeader(a.data, off)
		if err != nil {
			return &ValidationError{Type: "Header", Message: err.Error(), Offset: off}
		}

		end := h.End(off)
		if end > len(a.data) {
			return &ValidationError{
				Type:    "Coverage",
				Message: fmt.Sprintf("block ends at %d past region of %d bytes", end, len(a.data)),
				Offset:  off,
			}
		}

		free := h.Status == format.StatusFree
		if free && prevFree {
			return &ValidationError{
				Type:    "Coalescing",
				Message: "adjacent free blocks",
				Offset:  off,
			}
		}
		prevFree = free
		covered += format.HeaderSize + int(h.Size)

		if h.Last() {
			if end != len(a.data) {
				return &ValidationError{
					Type:    "Coverage",
					Message: fmt.Sprintf("last block ends at %d, region is %d bytes", end, len(a.data)),
					Offset:  off,
				}
			}
			break
		}

		// Strictly increasing links also rule out cycles.
		if int(h.Next) != end {
			return &ValidationError{
				Type:    "Ordering",
				Message: fmt.Sprintf("next link %d, block ends at %d", h.Next, end),
				Offset:  off,
			}
		}
		off = end
	}

	if covered != len(a.data) {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("blocks cover %d of %d bytes", covered, len(a.data)),
			Offset:  -1,
		}
	}
	return nil
}
