// Package format holds the low-level layout of a memarena block header and
// the byte-order helpers used to read and write it in place. Higher-level
// packages work in terms of offsets into the arena and leave the bytes to
// this package.
package format

const (
	// HeaderSize is the number of bytes preceding every block payload.
	//
	// Layout (little-endian):
	//
	//	Offset  Size  Description
	//	0x00    4     Offset of the next block, Terminal for the last block.
	//	0x04    4     Payload size in bytes, excluding the header.
	//	0x08    1     Status: StatusFree or StatusBusy.
	//	0x09    3     Reserved, zero.
	HeaderSize = 12

	// NextOffset is the offset of the next-block link within the header.
	NextOffset = 0x00

	// SizeOffset is the offset of the payload size within the header.
	SizeOffset = 0x04

	// StatusOffset is the offset of the status byte within the header.
	StatusOffset = 0x08

	// Alignment is the allocation unit. Every payload size is a multiple of it.
	Alignment = 4

	// AlignmentMask is the bitmask used for aligning to Alignment (Alignment - 1).
	AlignmentMask = Alignment - 1

	// Terminal marks the end of the block chain in the next field.
	Terminal = 0xFFFFFFFF

	// MaxArenaSize is the largest region size. Offsets stay well clear of
	// Terminal and fit an int on 32-bit platforms.
	MaxArenaSize = 0x7FFFF000
)

const (
	// StatusFree marks a block available for allocation.
	StatusFree byte = 0

	// StatusBusy marks a block handed out by Alloc.
	StatusBusy byte = 1
)
