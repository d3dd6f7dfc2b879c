package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	// Test MkdirAll
	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, lfs.MkdirAll(dir, 0755))

	// Test OpenFile (Create)
	fpath := filepath.Join(dir, "test.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	// Write
	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)

	// Sync
	assert.NoError(t, f.Sync())

	// Stat via File
	info, err := f.Stat()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	assert.NoError(t, f.Close())

	// Stat via FS
	info2, err := lfs.Stat(fpath)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info2.Size())

	// ReadDir
	entries, err := lfs.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	// Remove
	assert.NoError(t, lfs.Remove(fpath))
	_, err = lfs.Stat(fpath)
	assert.True(t, os.IsNotExist(err))
}

func TestReadWriteFile(t *testing.T) {
	tmp := t.TempDir()
	fpath := filepath.Join(tmp, "blob")

	require.NoError(t, WriteFile(Default, fpath, []byte("first version"), 0o644, false))
	require.NoError(t, WriteFile(Default, fpath, []byte("second"), 0o644, true))

	data, err := ReadFile(Default, fpath)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	_, err = ReadFile(Default, filepath.Join(tmp, "missing"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveIfExists(t *testing.T) {
	tmp := t.TempDir()
	fpath := filepath.Join(tmp, "gone")

	assert.NoError(t, RemoveIfExists(Default, fpath))

	require.NoError(t, WriteFile(Default, fpath, []byte("x"), 0o644, false))
	assert.NoError(t, RemoveIfExists(Default, fpath))
	_, err := os.Stat(fpath)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("faulty", Fault{FailOnWrite: true, FailAfterBytes: 5})

	fpath := filepath.Join(tmp, "faulty.txt")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	// Write 5 bytes - OK
	n, err := f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	// Write 1 byte - Fail
	n, err = f.Write([]byte("!"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 0, n)

	require.NoError(t, f.Close())
}

func TestFaultyFS_Rules(t *testing.T) {
	tmp := t.TempDir()
	boom := errors.New("boom")
	ffs := NewFaultyFS(nil)

	dir := filepath.Join(tmp, "data")
	require.NoError(t, ffs.MkdirAll(dir, 0o755))
	fpath := filepath.Join(dir, "a.bin")
	require.NoError(t, WriteFile(ffs, fpath, []byte("abc"), 0o644, true))

	ffs.AddRule("a.bin", Fault{FailOnRead: true, Err: boom})
	_, err := ReadFile(ffs, fpath)
	assert.ErrorIs(t, err, boom)

	// Later rules win.
	ffs.AddRule("a.bin", Fault{FailOnOpen: true})
	_, err = ReadFile(ffs, fpath)
	assert.ErrorIs(t, err, ErrInjected)

	ffs.AddRule("a.bin", Fault{FailOnSync: true})
	assert.Error(t, WriteFile(ffs, fpath, []byte("x"), 0o644, true))
	assert.NoError(t, WriteFile(ffs, fpath, []byte("x"), 0o644, false))

	ffs.AddRule("a.bin", Fault{FailOnClose: true})
	assert.Error(t, WriteFile(ffs, fpath, []byte("y"), 0o644, false))

	ffs.AddRule("a.bin", Fault{FailOnRemove: true})
	assert.Error(t, ffs.Remove(fpath))

	ffs.AddRule("a.bin", Fault{FailOnStat: true})
	_, err = ffs.Stat(fpath)
	assert.ErrorIs(t, err, ErrInjected)
	entries, err := ffs.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.bin", entries[0].Name())
	_, err = entries[0].Info()
	assert.ErrorIs(t, err, ErrInjected)

	ffs.AddRule("data", Fault{FailOnReadDir: true, FailOnMkdir: true})
	_, err = ffs.ReadDir(dir)
	assert.Error(t, err)
	assert.Error(t, ffs.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	ffs.Reset()
	entries, err = ffs.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.NoError(t, ffs.Remove(fpath))
}

func TestReplaceFile(t *testing.T) {
	tmp := t.TempDir()
	fpath := filepath.Join(tmp, "entry")
	tmpPath := filepath.Join(tmp, ".entry.tmp")
	ffs := NewFaultyFS(nil)

	require.NoError(t, ReplaceFile(ffs, fpath, tmpPath, []byte("old"), 0o644, true))

	t.Run("WriteFailureKeepsPrevious", func(t *testing.T) {
		ffs.AddRule(".entry.tmp", Fault{FailOnWrite: true})
		defer ffs.Reset()

		assert.ErrorIs(t, ReplaceFile(ffs, fpath, tmpPath, []byte("new"), 0o644, false), ErrInjected)
		data, err := ReadFile(ffs, fpath)
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
		assert.NoFileExists(t, tmpPath)
	})

	t.Run("RenameFailureKeepsPrevious", func(t *testing.T) {
		ffs.AddRule(fpath, Fault{FailOnRename: true})
		defer ffs.Reset()

		assert.ErrorIs(t, ReplaceFile(ffs, fpath, tmpPath, []byte("new"), 0o644, false), ErrInjected)
		data, err := ReadFile(ffs, fpath)
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
		assert.NoFileExists(t, tmpPath)
	})

	require.NoError(t, ReplaceFile(ffs, fpath, tmpPath, []byte("new"), 0o644, false))
	data, err := ReadFile(ffs, fpath)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.NoFileExists(t, tmpPath)
}
