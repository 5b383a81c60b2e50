package wak

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{Path: "a.txt", Content: []byte("alpha")},
		{Path: "sub/b.txt", Content: []byte("beta")},
		{Path: "sub/deep/c", Content: []byte("gamma")},
	}
}

func TestFSCompliance(t *testing.T) {
	fsys := NewFS(testEntries())
	require.NoError(t, fstest.TestFS(fsys, "a.txt", "sub/b.txt", "sub/deep/c"))
}

func TestFSReadFile(t *testing.T) {
	fsys := NewFS(testEntries())

	got, err := fsys.ReadFile("sub/b.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("beta"), got)

	_, err = fsys.ReadFile("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = fsys.ReadFile("../escape")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestFSReadFileCopies(t *testing.T) {
	entries := []Entry{{Path: "f", Content: []byte("data")}}
	fsys := NewFS(entries)

	got, err := fsys.ReadFile("f")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := fsys.ReadFile("f")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), again)
}

func TestFSStat(t *testing.T) {
	fsys := NewFS(testEntries())

	info, err := fsys.Stat("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", info.Name())
	assert.Equal(t, int64(5), info.Size())
	assert.False(t, info.IsDir())

	info, err = fsys.Stat("sub/deep")
	require.NoError(t, err)
	assert.Equal(t, "deep", info.Name())
	assert.True(t, info.IsDir())

	info, err = fsys.Stat(".")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFSReadDir(t *testing.T) {
	fsys := NewFS(testEntries())

	root, err := fsys.ReadDir(".")
	require.NoError(t, err)
	require.Len(t, root, 2)
	assert.Equal(t, "a.txt", root[0].Name())
	assert.False(t, root[0].IsDir())
	assert.Equal(t, "sub", root[1].Name())
	assert.True(t, root[1].IsDir())

	sub, err := fsys.ReadDir("sub")
	require.NoError(t, err)
	require.Len(t, sub, 2)
	assert.Equal(t, "b.txt", sub[0].Name())
	assert.Equal(t, "deep", sub[1].Name())

	_, err = fsys.ReadDir("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFSOpenFileSupportsReadAt(t *testing.T) {
	fsys := NewFS(testEntries())

	f, err := fsys.Open("a.txt")
	require.NoError(t, err)
	defer f.Close()

	ra, ok := f.(interface {
		ReadAt(p []byte, off int64) (int, error)
	})
	require.True(t, ok)

	buf := make([]byte, 2)
	n, err := ra.ReadAt(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("ha"), buf)
}

func TestFSEmptyArchive(t *testing.T) {
	fsys := NewFS(nil)

	listing, err := fsys.ReadDir(".")
	require.NoError(t, err)
	assert.Empty(t, listing)

	_, err = fsys.Open("anything")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
