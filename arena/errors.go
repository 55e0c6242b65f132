package arena

import "errors"

var (
	// ErrInvalidSize indicates a non-positive size passed to New, Init or Alloc.
	ErrInvalidSize = errors.New("arena: invalid size")

	// ErrAlreadyInitialized indicates a second Init of the process-wide arena.
	ErrAlreadyInitialized = errors.New("arena: already initialized")

	// ErrNotInitialized indicates a package-level call before Init succeeded.
	ErrNotInitialized = errors.New("arena: not initialized")

	// ErrOSAllocationFailure indicates the operating system refused the region.
	ErrOSAllocationFailure = errors.New("arena: os allocation failed")

	// ErrOutOfMemory indicates that no Free block is large enough for the request.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrInvalidPointer indicates a nil reference, or one that does not start
	// the payload of any block.
	ErrInvalidPointer = errors.New("arena: invalid pointer")

	// ErrDoubleFree indicates a Free of a block that is already Free.
	ErrDoubleFree = errors.New("arena: double free")
)
