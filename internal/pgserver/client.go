// Package pgserver wraps the native PostgreSQL command line tools
// (pg_basebackup, psql, pg_ctl). Each call runs one tool to completion;
// errors carry the tool's combined output so failures are diagnosable from
// the log line alone.
package pgserver

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/raoulx24/pgpitr/internal/logging"
)

type Client struct {
	host string
	port int
	user string
	log  logging.Logger
}

func New(host string, port int, user string, log logging.Logger) *Client {
	return &Client{host: host, port: port, user: user, log: log}
}

// connArgs are the connection flags shared by every tool invocation.
func (c *Client) connArgs() []string {
	return []string{"-h", c.host, "-p", strconv.Itoa(c.port), "-U", c.user}
}

func run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// CheckBaseBackupTool verifies the snapshot tool is invocable at all.
func (c *Client) CheckBaseBackupTool(ctx context.Context) error {
	if _, err := run(ctx, "pg_basebackup", "--version"); err != nil {
		return fmt.Errorf("pg_basebackup not available: %w", err)
	}
	return nil
}

// Ping runs a trivial status query to confirm the server is reachable and
// answering.
func (c *Client) Ping(ctx context.Context) error {
	args := append(c.connArgs(), "-c", "SELECT pg_is_in_recovery(), current_setting('data_directory')")
	if _, err := run(ctx, "psql", args...); err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	return nil
}

// ConfigFilePath asks the running server where its live configuration file
// is. The location is never hardcoded or guessed.
func (c *Client) ConfigFilePath(ctx context.Context) (string, error) {
	args := append(c.connArgs(), "-tAc", "SHOW config_file")
	out, err := run(ctx, "psql", args...)
	if err != nil {
		return "", fmt.Errorf("querying config file location: %w", err)
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", fmt.Errorf("server returned an empty config file location")
	}
	return path, nil
}
