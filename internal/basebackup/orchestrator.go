// Package basebackup drives one base backup run end to end: preflight,
// catalog allocation, snapshot capture.
package basebackup

import (
	"context"
	"errors"
	"fmt"

	"github.com/raoulx24/pgpitr/internal/catalog"
	"github.com/raoulx24/pgpitr/internal/logging"
)

var (
	// ErrPreflightFailed means the snapshot tool or the server itself was
	// unavailable. Nothing has been created or mutated.
	ErrPreflightFailed = errors.New("preflight failed")

	// ErrBackupFailed means the snapshot tool exited non-zero. The
	// allocated directory is left in place for inspection; recovery-time
	// validation rejects it as incomplete.
	ErrBackupFailed = errors.New("base backup failed")
)

// SnapshotTool is the slice of the server client the orchestrator needs.
type SnapshotTool interface {
	CheckBaseBackupTool(ctx context.Context) error
	Ping(ctx context.Context) error
	BaseBackup(ctx context.Context, dir, walMethod string) error
}

type Orchestrator struct {
	catalog *catalog.Catalog
	tool    SnapshotTool
	log     logging.Logger
}

func New(cat *catalog.Catalog, tool SnapshotTool, log logging.Logger) *Orchestrator {
	return &Orchestrator{catalog: cat, tool: tool, log: log}
}

// Run performs a single base backup with the given WAL capture method.
// Preflight runs before any directory is allocated, so a preflight failure
// leaves the catalog untouched. The returned snapshot is registered in the
// catalog by virtue of its directory existing.
func (o *Orchestrator) Run(ctx context.Context, walMethod string) (catalog.Snapshot, error) {
	if err := o.tool.CheckBaseBackupTool(ctx); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("%w: %w", ErrPreflightFailed, err)
	}
	if err := o.tool.Ping(ctx); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("%w: %w", ErrPreflightFailed, err)
	}

	snap, err := o.catalog.CreateSnapshotDirectory()
	if err != nil {
		return catalog.Snapshot{}, err
	}
	o.log.Info("snapshot directory allocated", "id", snap.ID, "path", snap.Path)

	if err := o.tool.BaseBackup(ctx, snap.Path, walMethod); err != nil {
		o.log.Error("base backup failed, directory kept for inspection",
			"id", snap.ID, "error", err)
		return catalog.Snapshot{}, fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	snap.WALMethod = walMethod
	o.log.Info("base backup complete", "id", snap.ID, "walMethod", walMethod)
	return snap, nil
}
