package recovery

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive members a complete snapshot directory must contain.
const (
	baseArchiveName = "base.tar.gz"
	walArchiveName  = "pg_wal.tar.gz"
)

// validateSnapshot is a cheap corruption smoke test, not a full integrity
// scan: both archive members must exist and the base archive's first entry
// must sit in the server's internal namespace. It reads nothing else and
// mutates nothing, so it is safe to run before any destructive step.
func validateSnapshot(dir string) error {
	basePath := filepath.Join(dir, baseArchiveName)
	for _, p := range []string{basePath, filepath.Join(dir, walArchiveName)} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("snapshot incomplete: %w", err)
		}
	}

	f, err := os.Open(basePath)
	if err != nil {
		return fmt.Errorf("opening base archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("snapshot corrupt: %w", err)
	}
	defer gz.Close()

	hdr, err := tar.NewReader(gz).Next()
	if err != nil {
		return fmt.Errorf("snapshot corrupt: reading base archive: %w", err)
	}
	if !strings.HasPrefix(hdr.Name, "pg_") {
		return fmt.Errorf("snapshot corrupt: unexpected first entry %q in base archive", hdr.Name)
	}
	return nil
}
