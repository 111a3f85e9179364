package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	s := New("/backups", nil)

	assert.Equal(t, "cp %p /backups/wal_archive/%f", s.ArchiveCommand())
	assert.Equal(t, "cp /backups/wal_archive/%f %p", s.RestoreCommand())
}

func TestSegments(t *testing.T) {
	root := t.TempDir()
	s := New(root, nil)

	// Missing directory means an empty store, not an error.
	segs, err := s.Segments()
	require.NoError(t, err)
	assert.Empty(t, segs)

	require.NoError(t, s.EnsureDir())
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "000000010000000000000001"), []byte("wal"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "000000010000000000000002"), []byte("walwal"), 0o644))

	segs, err = s.Segments()
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, int64(3), segs[0].Size)
}

func TestPruneIsNoop(t *testing.T) {
	root := t.TempDir()
	s := New(root, nil)
	require.NoError(t, s.EnsureDir())

	seg := filepath.Join(s.Dir(), "000000010000000000000001")
	require.NoError(t, os.WriteFile(seg, []byte("wal"), 0o644))

	assert.Zero(t, s.Prune())
	assert.FileExists(t, seg)
}
