// pgpitr-backup takes a base backup of a PostgreSQL cluster into a backup
// root, optionally configuring continuous WAL archiving first, and prunes
// old backups beyond the retention count.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raoulx24/pgpitr/internal/archive"
	"github.com/raoulx24/pgpitr/internal/archiving"
	"github.com/raoulx24/pgpitr/internal/basebackup"
	"github.com/raoulx24/pgpitr/internal/catalog"
	"github.com/raoulx24/pgpitr/internal/config"
	"github.com/raoulx24/pgpitr/internal/fs"
	"github.com/raoulx24/pgpitr/internal/logging"
	"github.com/raoulx24/pgpitr/internal/pgserver"
	"github.com/raoulx24/pgpitr/internal/scheduler"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	flags := flag.NewFlagSet("pgpitr-backup", flag.ExitOnError)
	walMethod := flags.String("wal-method", "", "WAL capture method: fetch or stream (default fetch)")
	keep := flags.Int("keep-backups", 0, "number of base backups to keep (default 5)")
	setupArchiving := flags.Bool("setup-archiving", false, "configure continuous WAL archiving before backing up")
	schedule := flags.String("schedule", "", "cron expression; run as a daemon instead of one-shot")
	configPath := flags.String("config", "", "optional YAML config file")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: pgpitr-backup [flags] <backup-root>\n\n")
		flags.PrintDefaults()
	}
	_ = flags.Parse(argv)

	if flags.NArg() != 1 {
		flags.Usage()
		return 1
	}
	backupRoot := flags.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *walMethod != "" {
		cfg.Backup.WALMethod = *walMethod
	}
	if *keep > 0 {
		cfg.Backup.KeepBackups = *keep
	}
	if *schedule != "" {
		cfg.Backup.Schedule = *schedule
	}

	if !pgserver.ValidWALMethod(cfg.Backup.WALMethod) {
		fmt.Fprintf(os.Stderr, "invalid wal method %q: want fetch or stream\n", cfg.Backup.WALMethod)
		return 1
	}

	logg := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	filesystem := fs.New()

	client := pgserver.New(cfg.Server.Host, cfg.Server.Port, cfg.Server.User, logg)
	cat := catalog.New(backupRoot, filesystem, logg)
	store := archive.New(backupRoot, filesystem)
	orch := basebackup.New(cat, client, logg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *setupArchiving {
		conf := archiving.New(store, client, filesystem, logg)
		res, err := conf.Enable(ctx)
		if err != nil {
			logg.Error("archiving setup failed", "error", err)
			return 1
		}
		logg.Info("archiving setup done", "result", res.String())
	}

	runOnce := func(ctx context.Context) error {
		snap, err := orch.Run(ctx, cfg.Backup.WALMethod)
		if err != nil {
			return err
		}

		// Pruning failures are partial by design: they are logged per
		// entry and do not fail the backup run.
		removed, err := cat.Prune(catalog.RetentionPolicy{KeepCount: cfg.Backup.KeepBackups})
		if err != nil {
			logg.Error("pruning incomplete", "removed", removed, "error", err)
		} else if removed > 0 {
			logg.Info("pruned old snapshots", "removed", removed)
		}

		logg.Info("backup complete", "id", snap.ID, "path", snap.Path)
		return nil
	}

	if cfg.Backup.Schedule != "" {
		sched, err := scheduler.New(cfg.Backup.Schedule, runOnce, logg)
		if err != nil {
			logg.Error("invalid schedule", "error", err)
			return 1
		}
		logg.Info("running on schedule", "spec", cfg.Backup.Schedule, "backupRoot", backupRoot)
		sched.Run(ctx)
		return 0
	}

	if err := runOnce(ctx); err != nil {
		logg.Error("backup failed", "error", err)
		return 1
	}
	return 0
}
