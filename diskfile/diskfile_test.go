package diskfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tmpName(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

func TestOpen_CreatesNewFile(t *testing.T) {
	name := tmpName(t)

	f, existed, err := Open(name, 128)
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, existed)
	assert.Equal(t, uint64(0), f.LastPageID())
}

func TestOpen_ReportsExistingFile(t *testing.T) {
	name := tmpName(t)

	f, existed, err := Open(name, 128)
	require.NoError(t, err)
	assert.False(t, existed)
	f.Close()

	f2, existed2, err := Open(name, 128)
	require.NoError(t, err)
	defer f2.Close()
	assert.True(t, existed2)
}

func TestAlloc_StartsAtPageOne(t *testing.T) {
	f, _, err := Open(tmpName(t), 64)
	require.NoError(t, err)
	defer f.Close()

	id, err := f.Alloc()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	id2, err := f.Alloc()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id2)
}

func TestWriteReadPage_RoundTrips(t *testing.T) {
	f, _, err := Open(tmpName(t), 64)
	require.NoError(t, err)
	defer f.Close()

	id, err := f.Alloc()
	require.NoError(t, err)

	want := make([]byte, 64)
	for i := range want {
		want[i] = byte(i)
	}
	require.NoError(t, f.WritePage(id, want))

	got := make([]byte, 64)
	require.NoError(t, f.ReadPage(id, got))
	assert.Equal(t, want, got)
}

func TestReadWritePage_RejectsPageZero(t *testing.T) {
	f, _, err := Open(tmpName(t), 64)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 64)
	assert.Error(t, f.ReadPage(0, buf))
	assert.Error(t, f.WritePage(0, buf))
}

func TestOpen_RejectsSizeNotMultipleOfPageSize(t *testing.T) {
	name := tmpName(t)
	require.NoError(t, os.WriteFile(name, make([]byte, 10), 0644))

	_, _, err := Open(name, 64)
	assert.Error(t, err)
}
