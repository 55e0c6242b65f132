package format

import "fmt"

// Header is the decoded form of a block header.
type Header struct {
	Next   uint32 // Offset of the following block, Terminal for the last one
	Size   uint32 // Payload size, excluding HeaderSize
	Status byte   // StatusFree or StatusBusy
}

// Last reports whether the header belongs to the final block of the chain.
func (h Header) Last() bool {
	return h.Next == Terminal
}

// End returns the offset one past the block's payload, which is where the
// following block must start.
func (h Header) End(off int) int {
	return off + HeaderSize + int(h.Size)
}

// ReadHeader decodes the header at off without validation. The caller must
// know that off addresses a block in the chain.
func ReadHeader(b []byte, off int) Header {
	return Header{
		Next:   ReadU32(b, off+NextOffset),
		Size:   ReadU32(b, off+SizeOffset),
		Status: b[off+StatusOffset],
	}
}

// DecodeHeader decodes the header at off and checks that it is well formed:
// in bounds, on the Alignment grid, with a known status byte.
func DecodeHeader(b []byte, off int) (Header, error) {
	if off < 0 || off+HeaderSize > len(b) {
		return Header{}, fmt.Errorf("%w: header at %d, buffer %d", ErrTruncated, off, len(b))
	}
	if off&AlignmentMask != 0 {
		return Header{}, fmt.Errorf("%w: header at %d", ErrMisaligned, off)
	}
	h := ReadHeader(b, off)
	if h.Size&AlignmentMask != 0 {
		return Header{}, fmt.Errorf("%w: payload size %d at %d", ErrMisaligned, h.Size, off)
	}
	if h.Status != StatusFree && h.Status != StatusBusy {
		return Header{}, fmt.Errorf("%w: 0x%02x at %d", ErrBadStatus, h.Status, off)
	}
	return h, nil
}

// PutHeader writes h at off, zeroing the reserved bytes.
func PutHeader(b []byte, off int, h Header) {
	PutU32(b, off+NextOffset, h.Next)
	PutU32(b, off+SizeOffset, h.Size)
	b[off+StatusOffset] = h.Status
	b[off+StatusOffset+1] = 0
	b[off+StatusOffset+2] = 0
	b[off+StatusOffset+3] = 0
}

// PutNext rewrites only the next link of the header at off.
func PutNext(b []byte, off int, next uint32) {
	PutU32(b, off+NextOffset, next)
}

// PutSize rewrites only the payload size of the header at off.
func PutSize(b []byte, off int, size uint32) {
	PutU32(b, off+SizeOffset, size)
}

// PutStatus rewrites only the status byte of the header at off.
func PutStatus(b []byte, off int, status byte) {
	b[off+StatusOffset] = status
}
