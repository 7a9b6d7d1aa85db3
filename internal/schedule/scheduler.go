// Package schedule runs the analysis pipeline on a daily timer.
package schedule

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidDailyAt reports a daily-at value that is not HH:MM.
var ErrInvalidDailyAt = errors.New("schedule: invalid daily-at time, want HH:MM")

// Scheduler triggers a job once per day at a fixed local time.
type Scheduler struct {
	cron   *cron.Cron
	logger *log.Logger
}

// CronSpec converts a HH:MM wall-clock time into a cron expression.
func CronSpec(dailyAt string) (string, error) {
	at, err := time.Parse("15:04", dailyAt)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDailyAt, dailyAt)
	}
	return fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour()), nil
}

// New builds a scheduler that runs job every day at dailyAt (HH:MM).
func New(dailyAt string, logger *log.Logger, job func()) (*Scheduler, error) {
	if logger == nil {
		logger = log.Default()
	}
	if job == nil {
		return nil, errors.New("schedule: nil job")
	}
	spec, err := CronSpec(dailyAt)
	if err != nil {
		return nil, err
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("schedule: register job: %w", err)
	}
	logger.Printf("scheduler armed daily_at=%s spec=%q", dailyAt, spec)
	return &Scheduler{cron: c, logger: logger}, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the timer and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Printf("scheduler stopped")
}
