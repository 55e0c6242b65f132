package arena

import (
	"fmt"

	"github.com/joshuapare/memarena/internal/format"
)

const (
	// HeaderSize is the number of bytes of metadata preceding each payload.
	HeaderSize = format.HeaderSize

	// Alignment is the allocation unit; payload sizes are multiples of it.
	Alignment = format.Alignment
)

// Ref is the offset of a block payload from the start of the arena region.
type Ref uint32

// NilRef is the null reference. No payload can start at offset 0 because the
// first block's header occupies it.
const NilRef Ref = 0

// Status is the allocation state of a block.
type Status uint8

const (
	StatusFree Status = Status(format.StatusFree)
	StatusBusy Status = Status(format.StatusBusy)
)

func (s Status) String() string {
	switch s {
	case StatusFree:
		return "Free"
	case StatusBusy:
		return "Busy"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// MarshalText encodes the status as "free" or "busy".
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusFree:
		return []byte("free"), nil
	case StatusBusy:
		return []byte("busy"), nil
	default:
		return nil, fmt.Errorf("arena: unknown status %d", uint8(s))
	}
}

// UnmarshalText decodes "free" or "busy".
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "free", "Free":
		*s = StatusFree
	case "busy", "Busy":
		*s = StatusBusy
	default:
		return fmt.Errorf("arena: unknown status %q", b)
	}
	return nil
}
