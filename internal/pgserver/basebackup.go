package pgserver

import "context"

// WAL capture modes accepted by BaseBackup. With fetch, the tool copies
// the WAL needed for consistency at the end of the run; with stream, WAL
// is streamed concurrently with the copy. Both produce a self-contained
// snapshot; the choice is passed through opaquely.
const (
	WALMethodFetch  = "fetch"
	WALMethodStream = "stream"
)

// ValidWALMethod reports whether m is a mode BaseBackup accepts.
func ValidWALMethod(m string) bool {
	return m == WALMethodFetch || m == WALMethodStream
}

// BaseBackup produces a compressed, tar-bundled physical copy of the
// cluster in dir, including the WAL needed to make it consistent.
func (c *Client) BaseBackup(ctx context.Context, dir, walMethod string) error {
	args := append(c.connArgs(),
		"-D", dir,
		"-Ft", // tar format
		"-z",  // compression
		"-P",  // progress
		"-X", walMethod,
	)

	c.log.Debug("running pg_basebackup", "dir", dir, "walMethod", walMethod)
	_, err := run(ctx, "pg_basebackup", args...)
	return err
}
