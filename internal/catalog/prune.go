package catalog

import (
	"errors"
	"fmt"
)

// Prune deletes the oldest snapshots beyond policy.KeepCount and returns
// how many were removed. Pruning is best-effort: a failed deletion is
// logged and collected, but the remaining entries are still attempted.
// Entries whose names are not snapshot ids are never touched.
func (c *Catalog) Prune(policy RetentionPolicy) (int, error) {
	if err := policy.validate(); err != nil {
		return 0, err
	}

	snaps, err := c.List()
	if err != nil {
		return 0, err
	}
	if len(snaps) <= policy.KeepCount {
		return 0, nil
	}

	removed := 0
	var errs []error
	for _, s := range snaps[:len(snaps)-policy.KeepCount] {
		if err := c.fs.RemoveAll(s.Path); err != nil {
			c.log.Error("pruning snapshot failed", "id", s.ID, "error", err)
			errs = append(errs, fmt.Errorf("removing %s: %w", s.ID, err))
			continue
		}
		c.log.Info("removed old snapshot", "id", s.ID, "path", s.Path)
		removed++
	}

	return removed, errors.Join(errs...)
}
