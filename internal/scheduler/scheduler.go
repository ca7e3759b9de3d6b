package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

// SessionPurger deletes expired session rows.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler periodically purges expired sessions from the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  SessionPurger
	interval  time.Duration
}

// New creates a new Scheduler purging sessions every interval.
func New(sessions SessionPurger, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		interval:  interval,
	}
}

// Start schedules the purge job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		purged, err := s.sessions.PurgeExpired(ctx)
		if err != nil {
			log.WithFields(log.Fields{"error": err}).Error("session purge failed")
			return
		}
		if purged > 0 {
			log.WithFields(log.Fields{"sessions": purged}).Info("purged expired sessions")
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
