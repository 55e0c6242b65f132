package arena

import (
	"io"
	"sync"
)

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// Every operation holds the one lock for its whole duration; block
// boundaries move during Alloc and Free, so nothing finer is possible.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafe creates an Arena with New and wraps it.
func NewSafe(size int, opts *Options) (*SafeArena, error) {
	a, err := New(size, opts)
	if err != nil {
		return nil, err
	}
	return &SafeArena{a: a}, nil
}

// Alloc thread-safely allocates size bytes. See Arena.Alloc.
func (s *SafeArena) Alloc(size int) (Ref, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(size)
}

// Free thread-safely releases ref. See Arena.Free.
func (s *SafeArena) Free(ref Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Free(ref)
}

// Inspect thread-safely snapshots the chain.
func (s *SafeArena) Inspect() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Inspect()
}

// Dump thread-safely writes the block listing.
func (s *SafeArena) Dump(w io.Writer, opts DumpOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Dump(w, opts)
}

// Check thread-safely validates the chain.
func (s *SafeArena) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Check()
}

// Stats thread-safely returns the allocator counters.
func (s *SafeArena) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}

// Size returns the region size. It never changes after creation.
func (s *SafeArena) Size() int {
	return s.a.Size()
}
