package os_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	osutils "github.com/ostafen/sniff/pkg/util/os"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	created, err := osutils.EnsureDir(dir, true)
	require.NoError(t, err)
	require.True(t, created)

	created, err = osutils.EnsureDir(dir, true)
	require.NoError(t, err)
	require.False(t, created)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), nil, 0644))

	_, err = osutils.EnsureDir(dir, true)
	require.Error(t, err)

	_, err = osutils.EnsureDir(dir, false)
	require.NoError(t, err)

	_, err = osutils.EnsureDir(filepath.Join(dir, "f"), false)
	require.Error(t, err)
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0644))

	files, err := osutils.ListFiles(dir)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "sub", "b.txt"),
	}, files)

	files, err = osutils.ListFiles(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.txt")}, files)

	_, err = osutils.ListFiles(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyTo(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	data := bytes.Repeat([]byte{1, 2, 3}, 1000)
	require.NoError(t, os.WriteFile(src, data, 0644))

	dst := filepath.Join(dir, "dst.bin")
	require.NoError(t, osutils.CopyTo(dst, src))

	copied, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, data, copied)

	// never overwrites
	require.Error(t, osutils.CopyTo(dst, src))
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.Equal(t, path, osutils.UniquePath(path))

	require.NoError(t, os.WriteFile(path, nil, 0644))
	require.Equal(t, filepath.Join(dir, "photo (1).jpg"), osutils.UniquePath(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo (1).jpg"), nil, 0644))
	require.Equal(t, filepath.Join(dir, "photo (2).jpg"), osutils.UniquePath(path))
}
