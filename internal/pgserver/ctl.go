package pgserver

import (
	"context"
	"fmt"
)

// Stop shuts the server down via pg_ctl against the given data directory.
func (c *Client) Stop(ctx context.Context, pgdata string) error {
	if _, err := run(ctx, "pg_ctl", "stop", "-D", pgdata); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}
	c.log.Info("server stopped", "pgdata", pgdata)
	return nil
}

// Start launches the server against the given data directory. When a
// recovery signal file is present the server comes up in recovery mode.
func (c *Client) Start(ctx context.Context, pgdata string) error {
	if _, err := run(ctx, "pg_ctl", "start", "-D", pgdata); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	c.log.Info("server started", "pgdata", pgdata)
	return nil
}
