package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkdirIsExclusive(t *testing.T) {
	f := New()
	dir := filepath.Join(t.TempDir(), "snap")

	require.NoError(t, f.Mkdir(dir))
	err := f.Mkdir(dir)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestCopyFile(t *testing.T) {
	f := New()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, f.CopyFile(context.Background(), src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestCopyFileMissingSource(t *testing.T) {
	f := New()
	dir := t.TempDir()
	err := f.CopyFile(context.Background(), filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))
	assert.Error(t, err)
}

func TestAppendFile(t *testing.T) {
	f := New()
	path := filepath.Join(t.TempDir(), "conf")

	require.NoError(t, f.AppendFile(path, []byte("a = 1\n")))
	require.NoError(t, f.AppendFile(path, []byte("b = 2\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nb = 2\n", string(got))
}

func TestReadDir(t *testing.T) {
	f := New()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), nil, 0o644))

	entries, err := f.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
