// Package archive manages the WAL segment archive: a flat directory under
// <root>/wal_archive that the database server appends completed segments
// to. From this system's point of view the store is append-only — the
// server is the only writer, segment names are server-assigned and never
// reused, and nothing here ever deletes a segment.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raoulx24/pgpitr/internal/fs"
)

const dirName = "wal_archive"

// Segment is one archived WAL file.
type Segment struct {
	Name string
	Size int64
}

type Store struct {
	root string
	fs   fs.FS
}

// New creates a store rooted at root. A nil filesystem means the local OS.
func New(root string, filesystem fs.FS) *Store {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Store{root: root, fs: filesystem}
}

// Dir is the directory the server archives segments into.
func (s *Store) Dir() string {
	return filepath.Join(s.root, dirName)
}

func (s *Store) EnsureDir() error {
	return s.fs.MkdirAll(s.Dir())
}

// ArchiveCommand is the command the server runs for each completed WAL
// segment. The server substitutes %p with the segment's source path and
// %f with its file name.
func (s *Store) ArchiveCommand() string {
	return fmt.Sprintf("cp %%p %s/%%f", s.Dir())
}

// RestoreCommand is the inverse: the command a recovering server runs to
// fetch a segment by name out of the store.
func (s *Store) RestoreCommand() string {
	return fmt.Sprintf("cp %s/%%f %%p", s.Dir())
}

// Segments lists the archived WAL files. A store whose directory does not
// exist yet is empty.
func (s *Store) Segments() ([]Segment, error) {
	entries, err := s.fs.ReadDir(s.Dir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing archive: %w", err)
	}

	var segs []Segment
	for _, ent := range entries {
		if ent.IsDir {
			continue
		}
		info, err := s.fs.Stat(filepath.Join(s.Dir(), ent.Name))
		if err != nil {
			return nil, fmt.Errorf("stat segment %s: %w", ent.Name, err)
		}
		segs = append(segs, Segment{Name: ent.Name, Size: info.Size})
	}
	return segs, nil
}

// Prune is deliberately a no-op and always reports zero removals.
// A segment may still be needed to roll forward from any snapshot older
// than the newest one, so the store never garbage-collects WAL.
func (s *Store) Prune() int {
	return 0
}
