package arena

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeArena_ConcurrentAllocFree(t *testing.T) {
	s, err := NewSafe(64*1024, &Options{PageSize: testPageSize})
	require.NoError(t, err)

	const workers = 8
	const rounds = 200

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range rounds {
				ref, buf, err := s.Alloc(16 + 4*((w+i)%8))
				if err != nil {
					errs <- err
					return
				}
				buf[0] = byte(w)
				if err := s.Free(ref); err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.NoError(t, s.Check())
	r := s.Inspect()
	require.Len(t, r.Blocks, 1)
	assert.Equal(t, 64*1024-HeaderSize, r.Blocks[0].Size)

	stats := s.Stats()
	assert.Equal(t, workers*rounds, stats.AllocCalls)
	assert.Equal(t, workers*rounds, stats.FreeCalls)
	assert.Equal(t, 64*1024, s.Size())
}

func TestSafeArena_Dump(t *testing.T) {
	s, err := NewSafe(4096, &Options{PageSize: testPageSize})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf, DumpOptions{Relative: true}))
	assert.Contains(t, buf.String(), "Total size = 4096")
}

func TestNewSafe_PropagatesErrors(t *testing.T) {
	_, err := NewSafe(0, nil)
	require.ErrorIs(t, err, ErrInvalidSize)
}
