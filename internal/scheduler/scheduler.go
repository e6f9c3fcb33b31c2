// Package scheduler provides an optional in-process cron trigger for
// collection runs. The default deployment leaves it disabled and relies on an
// external cron hitting /collect; enabling it is a config choice
// (collector.schedule), not a code change.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
)

// Scheduler triggers a collection run on a cron schedule.
type Scheduler struct {
	schedule string
	run      func()
	log      logger.Logger
	cron     *cron.Cron
	entryID  cron.EntryID
}

// New creates a Scheduler for the given standard 5-field cron expression.
// An empty expression yields a disabled scheduler; Start and Stop become no-ops.
func New(schedule string, run func(), log logger.Logger) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		run:      run,
		log:      log,
	}
}

// Enabled reports whether a schedule expression is configured.
func (s *Scheduler) Enabled() bool {
	return s.schedule != ""
}

// Start registers the cron entry and begins triggering runs. It returns an
// error when the schedule expression cannot be parsed.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.log.Info("Scheduler disabled, collection runs only via /collect")
		return nil
	}

	s.cron = cron.New()

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.log.Info("Cron triggered collection run",
			logger.String("schedule", s.schedule),
		)
		s.run()
	})
	if err != nil {
		return fmt.Errorf("add cron entry: %w", err)
	}

	s.entryID = entryID
	s.cron.Start()

	s.log.Info("Scheduler started",
		logger.String("schedule", s.schedule),
		logger.Int("entry_id", int(entryID)),
	)

	return nil
}

// Stop halts the cron loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}

	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")
}
