package recovery

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// wipeAndRestore irreversibly replaces the data directory with the
// snapshot's contents: delete, recreate empty, extract both archive
// members. Callers must only reach this after validateSnapshot passed in
// the same invocation.
func (o *Orchestrator) wipeAndRestore(snapDir string) error {
	if err := o.fs.RemoveAll(o.pgdata); err != nil {
		return fmt.Errorf("clearing data directory: %w", err)
	}
	if err := o.fs.MkdirAll(o.pgdata); err != nil {
		return fmt.Errorf("recreating data directory: %w", err)
	}

	for _, name := range []string{baseArchiveName, walArchiveName} {
		if err := extractTarGz(filepath.Join(snapDir, name), o.pgdata); err != nil {
			return fmt.Errorf("extracting %s: %w", name, err)
		}
	}

	o.log.Info("base backup restored", "snapshot", snapDir, "pgdata", o.pgdata)
	return nil
}

// extractTarGz unpacks a gzip'd tar archive into dir.
func extractTarGz(archivePath, dir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(dir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		}
	}
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// safeJoin rejects archive entries that would escape dir.
func safeJoin(dir, name string) (string, error) {
	target := filepath.Join(dir, name)
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes target directory", name)
	}
	return target, nil
}
