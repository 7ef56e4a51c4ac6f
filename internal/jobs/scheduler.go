// Package jobs runs the periodic maintenance tasks of the API server.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/EcoTrackApp/ecotrack-go/internal/store"
)

// Scheduler owns the cron runner for background maintenance.
type Scheduler struct {
	cron          *cron.Cron
	notifications *store.Notifications
	retentionDays int
}

// NewScheduler creates a scheduler with all maintenance jobs registered.
func NewScheduler(notifications *store.Notifications, retentionDays int) (*Scheduler, error) {
	s := &Scheduler{
		cron:          cron.New(),
		notifications: notifications,
		retentionDays: retentionDays,
	}

	// Nightly notification cleanup at midnight.
	if _, err := s.cron.AddFunc("0 0 * * *", s.pruneNotifications); err != nil {
		return nil, err
	}

	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("Background job scheduler started")
}

// Stop halts the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Background job scheduler stopped")
}

func (s *Scheduler) pruneNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	removed, err := s.notifications.PruneRead(ctx, cutoff)
	if err != nil {
		log.WithError(err).Error("Notification cleanup failed")
		return
	}

	log.WithFields(log.Fields{
		"removed": removed,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("Notification cleanup completed")
}
