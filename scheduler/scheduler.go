package scheduler

import (
	"context"
	"fmt"
	"time"

	"samiratravel/logger"
	"samiratravel/models"
	"samiratravel/services"
)

// DefaultInterval between security state sweeps
const DefaultInterval = time.Hour

// LimiterPruner drops expired login lockouts.
type LimiterPruner interface {
	Prune(ctx context.Context) (int, error)
}

// SessionPruner drops expired admin sessions.
type SessionPruner interface {
	PruneExpired(ctx context.Context) (int64, error)
}

// Scheduler periodically clears expired login lockouts and admin sessions.
type Scheduler struct {
	limiter  LimiterPruner
	sessions SessionPruner
	activity services.ActivityService
	interval time.Duration
}

// New creates a Scheduler. A non-positive interval uses DefaultInterval.
func New(limiter LimiterPruner, sessions SessionPruner, activity services.ActivityService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{limiter: limiter, sessions: sessions, activity: activity, interval: interval}
}

// Start 스케줄러 시작. Runs one sweep immediately, then one per interval
// until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	logger.Info("Scheduler started (interval %s)", s.interval)

	s.PruneSecurityState(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("Scheduler stopped")
				return
			case <-ticker.C:
				logger.Debug("Scheduler tick: Running PruneSecurityState")
				s.PruneSecurityState(ctx)
			}
		}
	}()
}

// PruneSecurityState removes expired lockouts and sessions and returns how
// many of each were removed.
func (s *Scheduler) PruneSecurityState(ctx context.Context) (int, int64) {
	lockouts, err := s.limiter.Prune(ctx)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Failed to prune login lockouts")
	}

	sessions, err := s.sessions.PruneExpired(ctx)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Failed to prune admin sessions")
	}

	logger.WithFields(map[string]interface{}{
		"lockouts": lockouts,
		"sessions": sessions,
	}).Info("Security state pruned")

	if lockouts > 0 || sessions > 0 {
		details := fmt.Sprintf("Removed %d expired lockout(s) and %d expired session(s).", lockouts, sessions)
		s.activity.Log(ctx, "system", "System", models.AdminActionPruneSecurity, details)
	}
	return lockouts, sessions
}
