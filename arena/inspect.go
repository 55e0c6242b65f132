package arena

import "github.com/joshuapare/memarena/internal/format"

// BlockInfo describes one block. Offsets are relative to the region base.
type BlockInfo struct {
	Index  int    `json:"index"`  // 1-based position in the chain
	Status Status `json:"status"` // Free or Busy
	Header int    `json:"header"` // Offset of the header
	Begin  int    `json:"begin"`  // Offset of the first payload byte
	End    int    `json:"end"`    // Offset one past the last payload byte
	Size   int    `json:"size"`   // Payload bytes
	Total  int    `json:"total"`  // Payload plus header
}

// Report is a read-only snapshot of the whole chain.
type Report struct {
	Base       uintptr     `json:"base"`
	Blocks     []BlockInfo `json:"blocks"`
	BusyBytes  int         `json:"busy_bytes"`
	FreeBytes  int         `json:"free_bytes"`
	TotalBytes int         `json:"total_bytes"`
}

// BusyBlocks counts the Busy entries in the report.
func (r Report) BusyBlocks() int {
	n := 0
	for _, b := range r.Blocks {
		if b.Status == StatusBusy {
			n++
		}
	}
	return n
}

// LargestFree returns the largest Free payload in the report, 0 if none.
func (r Report) LargestFree() int {
	largest := 0
	for _, b := range r.Blocks {
		if b.Status == StatusFree && b.Size > largest {
			largest = b.Size
		}
	}
	return largest
}

// Walk calls fn for each block in address order until fn returns false.
// fn must not call Alloc or Free on the same arena.
func (a *Arena) Walk(fn func(BlockInfo) bool) {
	i := 0
	for off, h := range a.chain() {
		i++
		begin := off + format.HeaderSize
		info := BlockInfo{
			Index:  i,
			Status: Status(h.Status),
			Header: off,
			Begin:  begin,
			End:    begin + int(h.Size),
			Size:   int(h.Size),
			Total:  format.HeaderSize + int(h.Size),
		}
		if !fn(info) {
			return
		}
	}
}

// Inspect traverses the chain once and returns every block with the
// Busy, Free and total byte counts (headers included).
func (a *Arena) Inspect() Report {
	r := Report{Base: a.Base()}
	a.Walk(func(b BlockInfo) bool {
		r.Blocks = append(r.Blocks, b)
		if b.Status == StatusBusy {
			r.BusyBytes += b.Total
		} else {
			r.FreeBytes += b.Total
		}
		return true
	})
	r.TotalBytes = r.BusyBytes + r.FreeBytes
	return r
}
