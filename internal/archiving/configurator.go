// Package archiving enables continuous WAL archival on a running server by
// editing its configuration file. Edits are append-only and idempotent,
// and the original file is copied aside before any mutation.
package archiving

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raoulx24/pgpitr/internal/archive"
	"github.com/raoulx24/pgpitr/internal/fs"
	"github.com/raoulx24/pgpitr/internal/logging"
)

// Result of an Enable call.
type Result int

const (
	// AlreadyConfigured: every required setting was present, no file diff.
	AlreadyConfigured Result = iota + 1
	// PendingRestart: settings were appended; they take effect only after
	// the operator restarts the server. This component never restarts it.
	PendingRestart
)

func (r Result) String() string {
	switch r {
	case AlreadyConfigured:
		return "already configured"
	case PendingRestart:
		return "configured, server restart required"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// ConfigLocator is the slice of the server client the configurator needs:
// the live configuration file location is read from the server, never
// hardcoded.
type ConfigLocator interface {
	ConfigFilePath(ctx context.Context) (string, error)
}

type Configurator struct {
	store  *archive.Store
	server ConfigLocator
	fs     fs.FS
	log    logging.Logger
	now    func() time.Time
}

func New(store *archive.Store, server ConfigLocator, filesystem fs.FS, log logging.Logger) *Configurator {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Configurator{
		store:  store,
		server: server,
		fs:     filesystem,
		log:    log,
		now:    time.Now,
	}
}

type setting struct {
	key   string
	value string
}

// settings is the minimal diff required for continuous archival into the
// store: archival on, the per-segment copy command, a WAL level sufficient
// for archiving, and enough sender slots for future streaming use.
func (c *Configurator) settings() []setting {
	return []setting{
		{"wal_level", "replica"},
		{"archive_mode", "on"},
		{"archive_command", c.store.ArchiveCommand()},
		{"max_wal_senders", "3"},
	}
}

// Enable makes sure continuous archiving is configured, appending only the
// settings not already present. Before mutating it takes a timestamped
// backup copy of the configuration file, so the prior version stays
// recoverable.
func (c *Configurator) Enable(ctx context.Context) (Result, error) {
	if err := c.store.EnsureDir(); err != nil {
		return 0, fmt.Errorf("creating archive directory: %w", err)
	}

	confPath, err := c.server.ConfigFilePath(ctx)
	if err != nil {
		return 0, err
	}

	content, err := c.fs.ReadFile(confPath)
	if err != nil {
		return 0, fmt.Errorf("reading server config: %w", err)
	}

	var missing []setting
	for _, s := range c.settings() {
		if !hasSetting(string(content), s.key) {
			missing = append(missing, s)
		}
	}
	if len(missing) == 0 {
		c.log.Info("archiving already configured", "config", confPath)
		return AlreadyConfigured, nil
	}

	backup := fmt.Sprintf("%s.bak.%s", confPath, c.now().Format("20060102_150405"))
	if err := c.fs.CopyFile(ctx, confPath, backup); err != nil {
		return 0, fmt.Errorf("backing up server config: %w", err)
	}
	c.log.Info("server config backed up", "copy", backup)

	var buf bytes.Buffer
	if len(content) > 0 && content[len(content)-1] != '\n' {
		buf.WriteByte('\n')
	}
	for _, s := range missing {
		fmt.Fprintf(&buf, "%s = '%s'\n", s.key, s.value)
		c.log.Info("appending setting", "key", s.key, "value", s.value)
	}
	if err := c.fs.AppendFile(confPath, buf.Bytes()); err != nil {
		return 0, fmt.Errorf("writing server config: %w", err)
	}

	c.log.Info("archiving configured, restart required", "config", confPath)
	return PendingRestart, nil
}

// hasSetting reports whether key is assigned anywhere in content.
// Commented-out lines do not count.
func hasSetting(content, key string) bool {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		rest, ok := strings.CutPrefix(line, key)
		if !ok {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(rest), "=") {
			return true
		}
	}
	return false
}
