package archiving

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/pgpitr/internal/archive"
	"github.com/raoulx24/pgpitr/internal/logging"
)

type staticLocator struct {
	path string
}

func (s staticLocator) ConfigFilePath(ctx context.Context) (string, error) {
	return s.path, nil
}

func setup(t *testing.T, confContent string) (*Configurator, string, string) {
	t.Helper()
	root := t.TempDir()

	confDir := t.TempDir()
	confPath := filepath.Join(confDir, "postgresql.conf")
	require.NoError(t, os.WriteFile(confPath, []byte(confContent), 0o644))

	c := New(archive.New(root, nil), staticLocator{path: confPath}, nil, logging.Nop())
	c.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local) }
	return c, confPath, root
}

func backupCopies(t *testing.T, confPath string) []string {
	t.Helper()
	matches, err := filepath.Glob(confPath + ".bak.*")
	require.NoError(t, err)
	return matches
}

func TestEnableAppendsMissingSettings(t *testing.T) {
	c, confPath, root := setup(t, "shared_buffers = '128MB'\n# archive_mode = on\n")

	res, err := c.Enable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PendingRestart, res)

	content, err := os.ReadFile(confPath)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "wal_level = 'replica'")
	assert.Contains(t, text, "archive_mode = 'on'")
	assert.Contains(t, text, "archive_command = 'cp %p "+filepath.Join(root, "wal_archive")+"/%f'")
	assert.Contains(t, text, "max_wal_senders = '3'")
	// Original content is untouched, the diff is an append.
	assert.True(t, strings.HasPrefix(text, "shared_buffers = '128MB'\n"))

	assert.DirExists(t, filepath.Join(root, "wal_archive"))
	assert.Len(t, backupCopies(t, confPath), 1)
}

func TestEnableIsIdempotent(t *testing.T) {
	c, confPath, _ := setup(t, "listen_addresses = '*'\n")

	res, err := c.Enable(context.Background())
	require.NoError(t, err)
	require.Equal(t, PendingRestart, res)

	after, err := os.ReadFile(confPath)
	require.NoError(t, err)

	res, err = c.Enable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AlreadyConfigured, res)

	// Second run: no file diff and no further backup copy.
	again, err := os.ReadFile(confPath)
	require.NoError(t, err)
	assert.Equal(t, after, again)
	assert.Len(t, backupCopies(t, confPath), 1)
}

func TestEnablePartialDiff(t *testing.T) {
	c, confPath, _ := setup(t, "wal_level = replica\narchive_mode = on\n")

	res, err := c.Enable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PendingRestart, res)

	content, err := os.ReadFile(confPath)
	require.NoError(t, err)
	text := string(content)

	// Present settings are not duplicated.
	assert.Equal(t, 1, strings.Count(text, "wal_level"))
	assert.Contains(t, text, "archive_command")
	assert.Contains(t, text, "max_wal_senders")
}

func TestHasSetting(t *testing.T) {
	content := "wal_level = replica\n# archive_mode = on\nmax_wal_senders=3\n"

	assert.True(t, hasSetting(content, "wal_level"))
	assert.True(t, hasSetting(content, "max_wal_senders"))
	assert.False(t, hasSetting(content, "archive_mode"))
	assert.False(t, hasSetting(content, "archive_command"))
	// Prefix of another key must not match.
	assert.False(t, hasSetting(content, "wal"))
}
