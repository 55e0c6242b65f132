package arena

// Stats holds allocator counters since the arena was created.
type Stats struct {
	AllocCalls       int   // Total Alloc() calls
	AllocFailures    int   // Alloc() calls that returned an error
	FreeCalls        int   // Total Free() calls
	FreeFailures     int   // Free() calls that returned an error
	SplitCount       int   // Allocations that split the chosen block
	ExactFits        int   // Allocations that took a block with zero slack
	WholeBlocks      int   // Allocations that absorbed slack too small to split
	CoalesceForward  int   // Merges of a Free successor
	CoalesceBackward int   // Merges into a Free predecessor
	BytesAllocated   int64 // Payload bytes handed out, rounding included
	BytesFreed       int64 // Payload bytes returned by Free
}

// Stats returns a snapshot of the allocator counters.
func (a *Arena) Stats() Stats {
	return a.stats
}
