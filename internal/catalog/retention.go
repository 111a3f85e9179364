package catalog

import "fmt"

// RetentionPolicy says how many of the most recent snapshots survive a
// prune.
type RetentionPolicy struct {
	KeepCount int
}

func (p RetentionPolicy) validate() error {
	if p.KeepCount < 1 {
		return fmt.Errorf("keep count must be at least 1, got %d", p.KeepCount)
	}
	return nil
}
