// Package scheduler runs backups on a cron schedule, one at a time.
// Ticks land in a single-slot mailbox, so runs never overlap and a burst
// of due ticks collapses into one pending run — preserving the
// one-active-backup assumption the rest of the system makes.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/pgpitr/internal/logging"
	"github.com/raoulx24/pgpitr/internal/mailbox"
)

type tick struct {
	due time.Time
}

type Scheduler struct {
	cron *cron.Cron
	mb   *mailbox.Mailbox[tick]
	run  func(ctx context.Context) error
	log  logging.Logger
}

// New builds a scheduler that fires run per the cron expression spec.
func New(spec string, run func(ctx context.Context) error, log logging.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		mb:   mailbox.New[tick](),
		run:  run,
		log:  log,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.mb.Put(tick{due: time.Now()}) }); err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", spec, err)
	}
	return s, nil
}

// Run blocks until ctx is canceled, executing one backup per delivered
// tick. A failed run is logged and the loop keeps going; the next tick
// gets a fresh attempt.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	defer s.cron.Stop()

	for {
		t, ok := s.mb.Take(ctx)
		if !ok {
			s.log.Info("scheduler stopped")
			return
		}

		s.log.Info("scheduled backup starting", "due", t.due.Format(time.RFC3339))
		if err := s.run(ctx); err != nil {
			s.log.Error("scheduled backup failed", "error", err)
		}
	}
}
