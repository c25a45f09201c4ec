package bufpool

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bpindex/diskfile"
)

func newTestPool(t *testing.T, poolSize int) *Pool {
	name := filepath.Join(t.TempDir(), uuid.New().String())
	file, _, err := diskfile.Open(name, RawPageSize(64))
	require.NoError(t, err)
	return New(file, poolSize)
}

func TestAlloc_ReturnsZeroedPinnedFrame(t *testing.T) {
	p := newTestPool(t, 4)
	defer p.Close()

	f, err := p.Alloc()
	require.NoError(t, err)
	for _, b := range f.Content() {
		assert.Equal(t, byte(0), b)
	}
}

func TestUnpin_ThenReadComesFromCache(t *testing.T) {
	p := newTestPool(t, 4)
	defer p.Close()

	f, err := p.Alloc()
	require.NoError(t, err)
	copy(f.Content(), []byte("hello"))
	p.Unpin(f.PageID, true)

	f2, err := p.Read(f.PageID)
	require.NoError(t, err)
	assert.Equal(t, byte('h'), f2.Content()[0])
	p.Unpin(f2.PageID, false)
}

func TestUnpin_OfNotResidentPagePanics(t *testing.T) {
	p := newTestPool(t, 4)
	defer p.Close()

	assert.Panics(t, func() {
		p.Unpin(999, false)
	})
}

func TestUnpin_OfZeroPinCountPanics(t *testing.T) {
	p := newTestPool(t, 4)
	defer p.Close()

	f, err := p.Alloc()
	require.NoError(t, err)
	p.Unpin(f.PageID, false)

	assert.Panics(t, func() {
		p.Unpin(f.PageID, false)
	})
}

func TestEviction_WritesBackDirtyVictim(t *testing.T) {
	p := newTestPool(t, 2)
	defer p.Close()

	f1, err := p.Alloc()
	require.NoError(t, err)
	copy(f1.Content(), []byte("one"))
	p.Unpin(f1.PageID, true)

	// f2 stays pinned, so f1 is the only frame the clock can evict.
	f2, err := p.Alloc()
	require.NoError(t, err)

	// A third alloc with a pool of size 2 forces an eviction.
	f3, err := p.Alloc()
	require.NoError(t, err)
	p.Unpin(f3.PageID, false)

	reread, err := p.Read(f1.PageID)
	require.NoError(t, err)
	assert.Equal(t, byte('o'), reread.Content()[0])
	p.Unpin(reread.PageID, false)
	p.Unpin(f2.PageID, false)
}

func TestFlush_ClearsDirtyBits(t *testing.T) {
	p := newTestPool(t, 4)
	defer p.Close()

	f, err := p.Alloc()
	require.NoError(t, err)
	copy(f.Content(), []byte("x"))
	p.Unpin(f.PageID, true)

	require.NoError(t, p.Flush())
	assert.False(t, f.IsDirty())
}
