// Package catalog is the backup catalog: a timestamp-ordered collection of
// base backup snapshots under <root>/base. There is no index file — the
// directory listing IS the catalog, and all access to it goes through this
// package.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/raoulx24/pgpitr/internal/fs"
	"github.com/raoulx24/pgpitr/internal/logging"
)

const baseDirName = "base"

var (
	// ErrConflict means a snapshot directory with the generated id already
	// exists (two creations within the same clock second).
	ErrConflict = errors.New("snapshot id already exists")

	// ErrNotFound means the catalog has no matching snapshot. An empty
	// catalog is not an I/O error; callers decide whether it is fatal.
	ErrNotFound = errors.New("snapshot not found")
)

type Catalog struct {
	root string
	fs   fs.FS
	log  logging.Logger
	now  func() time.Time
}

// New creates a catalog rooted at root. A nil filesystem means the local OS.
func New(root string, filesystem fs.FS, log logging.Logger) *Catalog {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Catalog{
		root: root,
		fs:   filesystem,
		log:  log,
		now:  time.Now,
	}
}

// BaseDir is the directory holding one subdirectory per snapshot.
func (c *Catalog) BaseDir() string {
	return filepath.Join(c.root, baseDirName)
}

// CreateSnapshotDirectory allocates a new snapshot directory named after
// the current time. The create is exclusive: if the id was handed out
// within the same second the call fails with ErrConflict instead of
// silently reusing the directory.
func (c *Catalog) CreateSnapshotDirectory() (Snapshot, error) {
	ts := c.now()
	id := ts.Format(IDFormat)
	dir := filepath.Join(c.BaseDir(), id)

	if err := c.fs.MkdirAll(c.BaseDir()); err != nil {
		return Snapshot{}, fmt.Errorf("creating base directory: %w", err)
	}
	if err := c.fs.Mkdir(dir); err != nil {
		if errors.Is(err, os.ErrExist) {
			return Snapshot{}, fmt.Errorf("snapshot %s: %w", id, ErrConflict)
		}
		return Snapshot{}, fmt.Errorf("creating snapshot directory: %w", err)
	}

	c.log.Debug("snapshot directory created", "id", id, "path", dir)
	return Snapshot{ID: id, Path: dir, CreatedAt: ts.Truncate(time.Second)}, nil
}

// List returns all snapshots ordered oldest first. A catalog whose base
// directory does not exist yet is simply empty.
func (c *Catalog) List() ([]Snapshot, error) {
	entries, err := c.fs.ReadDir(c.BaseDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing catalog: %w", err)
	}

	var snaps []Snapshot
	for _, ent := range entries {
		if !ent.IsDir {
			continue
		}
		created, ok := ParseID(ent.Name)
		if !ok {
			continue
		}
		snaps = append(snaps, Snapshot{
			ID:        ent.Name,
			Path:      filepath.Join(c.BaseDir(), ent.Name),
			CreatedAt: created,
		})
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID < snaps[j].ID })
	return snaps, nil
}

// Latest returns the most recent snapshot, or ErrNotFound on an empty
// catalog.
func (c *Catalog) Latest() (Snapshot, error) {
	snaps, err := c.List()
	if err != nil {
		return Snapshot{}, err
	}
	if len(snaps) == 0 {
		return Snapshot{}, fmt.Errorf("catalog is empty: %w", ErrNotFound)
	}
	return snaps[len(snaps)-1], nil
}

// ByID looks a snapshot up by its exact id.
func (c *Catalog) ByID(id string) (Snapshot, error) {
	snaps, err := c.List()
	if err != nil {
		return Snapshot{}, err
	}
	for _, s := range snaps {
		if s.ID == id {
			return s, nil
		}
	}
	return Snapshot{}, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
}
