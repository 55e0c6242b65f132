package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFree_InvalidPointer(t *testing.T) {
	a := newTestArena(t, 4096)
	refs := carve(t, a, 100, 100)
	before := snapshot(a)

	tests := []struct {
		name string
		ref  Ref
	}{
		{"nil", NilRef},
		{"inside first header", Ref(5)},
		{"inside payload", refs[0] + 4},
		{"header address instead of payload", refs[1] - HeaderSize},
		{"past region end", Ref(a.Size() + 100)},
		{"at region end", Ref(a.Size())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Free(tt.ref)
			require.ErrorIs(t, err, ErrInvalidPointer)
			assert.Equal(t, before, a.data, "failed Free must not mutate the arena")
		})
	}
	assert.Equal(t, len(tests), a.Stats().FreeFailures)
	assertInvariants(t, a)
}

func TestFree_NoNeighboursFree(t *testing.T) {
	a := newTestArena(t, 4096)
	refs := carve(t, a, 100, 100, 100)

	require.NoError(t, a.Free(refs[1]))
	b := blockAt(t, a, refs[1])
	assert.Equal(t, StatusFree, b.Status)
	assert.Equal(t, 100, b.Size)

	stats := a.Stats()
	assert.Zero(t, stats.CoalesceBackward)
	assert.Zero(t, stats.CoalesceForward)
	assertInvariants(t, a)
}

func TestFree_CoalesceBackward(t *testing.T) {
	a := newTestArena(t, 4096)
	refs := carve(t, a, 100, 100, 100)
	require.NoError(t, a.Free(refs[0]))
	require.NoError(t, a.Free(refs[1]))

	b := blockAt(t, a, refs[0])
	assert.Equal(t, StatusFree, b.Status)
	assert.Equal(t, 100+HeaderSize+100, b.Size)
	assert.Equal(t, 1, a.Stats().CoalesceBackward)
	assert.Len(t, a.Inspect().Blocks, 3)
	assertInvariants(t, a)
}

func TestFree_CoalesceForward(t *testing.T) {
	a := newTestArena(t, 4096)
	refs := carve(t, a, 100, 100, 100)
	require.NoError(t, a.Free(refs[1]))
	require.NoError(t, a.Free(refs[0]))

	b := blockAt(t, a, refs[0])
	assert.Equal(t, StatusFree, b.Status)
	assert.Equal(t, 100+HeaderSize+100, b.Size)
	assert.Equal(t, 1, a.Stats().CoalesceForward)
	assertInvariants(t, a)
}

func TestFree_CoalesceBothWays(t *testing.T) {
	a := newTestArena(t, 4096)
	refs := carve(t, a, 100, 100, 100, 100)
	require.NoError(t, a.Free(refs[0]))
	require.NoError(t, a.Free(refs[2]))
	require.NoError(t, a.Free(refs[1]))

	r := a.Inspect()
	require.Len(t, r.Blocks, 3)
	assert.Equal(t, StatusFree, r.Blocks[0].Status)
	assert.Equal(t, 3*100+2*HeaderSize, r.Blocks[0].Size)
	assert.Equal(t, StatusBusy, r.Blocks[1].Status)
	assert.Equal(t, int(refs[3]), r.Blocks[1].Begin)

	stats := a.Stats()
	assert.Equal(t, 1, stats.CoalesceBackward)
	assert.Equal(t, 1, stats.CoalesceForward)
	assertInvariants(t, a)
}

func TestFree_LastBusyBlockMergesIntoTail(t *testing.T) {
	a := newTestArena(t, 4096)
	refs := carve(t, a, 100, 200)
	require.NoError(t, a.Free(refs[1]))

	r := a.Inspect()
	require.Len(t, r.Blocks, 2)
	assert.Equal(t, 4096-2*HeaderSize-100, r.Blocks[1].Size)
	assertInvariants(t, a)
}

func TestFree_DoubleFree(t *testing.T) {
	a := newTestArena(t, 4096)
	refs := carve(t, a, 100, 100, 100)
	require.NoError(t, a.Free(refs[1]))
	before := snapshot(a)

	err := a.Free(refs[1])
	require.ErrorIs(t, err, ErrDoubleFree)
	assert.Equal(t, before, a.data)
	assertInvariants(t, a)
}

// TestFree_MergedAwayReference shows that once a block has been folded into
// its predecessor its reference no longer starts any block.
func TestFree_MergedAwayReference(t *testing.T) {
	a := newTestArena(t, 4096)
	refs := carve(t, a, 100, 100, 100)
	require.NoError(t, a.Free(refs[0]))
	require.NoError(t, a.Free(refs[1]))

	err := a.Free(refs[1])
	require.ErrorIs(t, err, ErrInvalidPointer)
	assertInvariants(t, a)
}

func TestFree_RoundTripRestoresFreshArena(t *testing.T) {
	for _, k := range []int{1, 4, 100, 600, 4000, 4080, 4084 - HeaderSize + 4, 4084} {
		a := newTestArena(t, 4096)
		ref, _, err := a.Alloc(k)
		require.NoError(t, err, "Alloc(%d)", k)
		require.NoError(t, a.Free(ref), "Free after Alloc(%d)", k)

		r := a.Inspect()
		require.Len(t, r.Blocks, 1, "k=%d", k)
		assert.Equal(t, StatusFree, r.Blocks[0].Status)
		assert.Equal(t, 4096-HeaderSize, r.Blocks[0].Size)
		assertInvariants(t, a)
	}
}

func TestFree_BytesAccounting(t *testing.T) {
	a := newTestArena(t, 4096)
	refs := carve(t, a, 10, 20, 30)
	for _, ref := range refs {
		require.NoError(t, a.Free(ref))
	}
	stats := a.Stats()
	assert.Equal(t, int64(12+20+32), stats.BytesAllocated)
	assert.Equal(t, stats.BytesAllocated, stats.BytesFreed)
	assert.Equal(t, 3, stats.FreeCalls)
	assert.Zero(t, stats.FreeFailures)
}

// A split that leaves exactly HeaderSize bytes puts a zero-payload Free block
// at the region end, so a reference equal to the region size names a block.
func TestFree_ZeroPayloadTailAtRegionEnd(t *testing.T) {
	a := newTestArena(t, 4096)

	_, _, err := a.Alloc(a.Capacity() - HeaderSize)
	require.NoError(t, err)
	assertInvariants(t, a)

	tail := blockAt(t, a, Ref(a.Size()))
	assert.Equal(t, StatusFree, tail.Status)
	assert.Zero(t, tail.Size)

	before := snapshot(a)
	require.ErrorIs(t, a.Free(Ref(a.Size())), ErrDoubleFree)
	require.ErrorIs(t, a.Free(Ref(a.Size()+Alignment)), ErrInvalidPointer)
	assert.Equal(t, before, a.data)
}
