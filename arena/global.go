package arena

import (
	"os"
	"sync"
)

// The process-wide arena. stdMu guards the pointer only; the arena itself
// expects single-threaded callers.
var (
	stdMu sync.Mutex
	std   *Arena
)

// Init creates the process-wide arena. It succeeds at most once per process;
// an Init that failed leaves the process uninitialized, so it may be retried.
func Init(size int) error {
	stdMu.Lock()
	defer stdMu.Unlock()

	if std != nil {
		return ErrAlreadyInitialized
	}
	a, err := New(size, nil)
	if err != nil {
		return err
	}
	std = a
	return nil
}

// Default returns the process-wide arena, or ErrNotInitialized before Init.
func Default() (*Arena, error) {
	stdMu.Lock()
	defer stdMu.Unlock()

	if std == nil {
		return nil, ErrNotInitialized
	}
	return std, nil
}

// Alloc allocates from the process-wide arena. See Arena.Alloc.
func Alloc(size int) (Ref, []byte, error) {
	a, err := Default()
	if err != nil {
		return NilRef, nil, err
	}
	return a.Alloc(size)
}

// Free releases a block of the process-wide arena. See Arena.Free.
func Free(ref Ref) error {
	a, err := Default()
	if err != nil {
		return err
	}
	return a.Free(ref)
}

// Dump writes the process-wide arena's block listing to standard output.
func Dump() error {
	a, err := Default()
	if err != nil {
		return err
	}
	return a.Dump(os.Stdout, DefaultDumpOptions())
}
