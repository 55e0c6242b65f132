// Package arena provides a single-region, best-fit memory allocator.
//
// # Overview
//
// An Arena reserves one page-rounded, zero-initialized region from the
// operating system when it is created and never asks the OS for memory
// again. The region is carved into blocks, each a fixed-size header followed
// by a payload. Headers live inside the region itself and link every block to
// its successor in address order, so the block chain always covers the whole
// region with no gaps, no overlaps and no auxiliary index.
//
// # Operations
//
//   - New(size, opts): reserve the region and install one Free block
//   - Alloc(size): best-fit search over the chain, splitting the winner
//   - Free(ref): mark a Busy block Free and merge it with Free neighbours
//   - Inspect / Dump: read-only listing of every block and the totals
//   - Check: verify the structural invariants of the chain
//
// # Usage Example
//
//	a, err := arena.New(4096, nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := a.Alloc(600)
//	if err != nil {
//	    return err // arena.ErrOutOfMemory when nothing fits
//	}
//	copy(buf, payload)
//
//	// Later, release the block
//	err = a.Free(ref)
//
// # Block Layout
//
// Every block starts with a 12-byte header (see internal/format):
//
//	0x00  next    offset of the following block, 0xFFFFFFFF for the last
//	0x04  size    payload bytes, always a multiple of 4
//	0x08  status  0 = Free, 1 = Busy
//
// References returned by Alloc are payload offsets from the start of the
// region. The header of a block sits HeaderSize bytes before its reference.
// NilRef (0) never addresses a payload and serves as the null reference.
//
// # Allocation Policy
//
// Alloc rounds the request up to a multiple of 4 and scans the full chain.
// Among Free blocks that fit, the one leaving the least slack wins; on a tie
// the higher-address block wins. When the slack can hold another header the
// block is split and the tail becomes a new Free block; otherwise the caller
// receives the whole block.
//
// # Process-wide Arena
//
// Init, Alloc, Free and Dump at package level operate on one process-wide
// arena. Init succeeds once per process; later calls fail with
// ErrAlreadyInitialized. Code that needs several arenas, or hermetic tests,
// should create them with New instead.
//
// # Thread Safety
//
// Arena is not safe for concurrent use. SafeArena wraps an Arena with a
// single mutex held across every operation, including Inspect, because block
// boundaries move while Alloc and Free run.
//
// # Tracing
//
// The allocator never writes output on its own. Setting Options.Trace, or
// running with MEMARENA_LOG_ALLOC set when using DefaultOptions, emits one
// line per split, merge and failed request.
package arena
