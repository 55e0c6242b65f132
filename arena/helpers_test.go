package arena

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// testPageSize keeps region sizes identical across hosts with larger pages.
const testPageSize = 4096

// newTestArena creates an arena with a fixed 4 KiB page size.
func newTestArena(t testing.TB, size int) *Arena {
	t.Helper()
	a, err := New(size, &Options{PageSize: testPageSize})
	require.NoError(t, err)
	assertInvariants(t, a)
	return a
}

// carve allocates each size in order. On a fresh arena the blocks come out
// back to back from offset 0, since the tail is the only Free block.
func carve(t testing.TB, a *Arena, sizes ...int) []Ref {
	t.Helper()
	refs := make([]Ref, 0, len(sizes))
	for _, sz := range sizes {
		ref, _, err := a.Alloc(sz)
		require.NoError(t, err, "carve alloc(%d)", sz)
		refs = append(refs, ref)
	}
	return refs
}

// assertInvariants fails the test if the chain is structurally broken or
// its blocks do not add up to the region size.
func assertInvariants(t testing.TB, a *Arena) {
	t.Helper()
	require.NoError(t, a.Check())

	r := a.Inspect()
	require.Equal(t, a.Size(), r.TotalBytes, "coverage")
	sum := 0
	for i, b := range r.Blocks {
		require.Zero(t, b.Size%Alignment, "block %d size %d", b.Index, b.Size)
		if i > 0 {
			prev := r.Blocks[i-1]
			require.Equal(t, prev.End, b.Header, "block %d does not follow block %d", b.Index, prev.Index)
		}
		sum += b.Total
	}
	require.Equal(t, a.Size(), sum)
	require.Zero(t, r.Blocks[0].Header, "first block must start at the base")
}

// snapshot copies the region so a failed call can be shown to change nothing.
func snapshot(a *Arena) []byte {
	return bytes.Clone(a.data)
}

// blockAt returns the block whose payload starts at ref.
func blockAt(t testing.TB, a *Arena, ref Ref) BlockInfo {
	t.Helper()
	var found *BlockInfo
	a.Walk(func(b BlockInfo) bool {
		if b.Begin == int(ref) {
			found = &b
			return false
		}
		return true
	})
	require.NotNil(t, found, "no block at ref %d", ref)
	return *found
}
