// Package jobs runs periodic housekeeping on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	systemLogRetentionDays = 30
	jobTimeout             = 2 * time.Minute
)

type Scheduler struct {
	cron          *cron.Cron
	db            *gorm.DB
	otp           *services.OTPService
	notifications *services.NotificationService
	cfg           *config.Config
}

func NewScheduler(db *gorm.DB, otp *services.OTPService, notifications *services.NotificationService, cfg *config.Config) *Scheduler {
	logger := slogLogger{}
	return &Scheduler{
		cron: cron.New(cron.WithLogger(logger), cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
		db:            db,
		otp:           otp,
		notifications: notifications,
		cfg:           cfg,
	}
}

// Start registers every job and starts the scheduler in its own goroutine.
func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		fn   func(context.Context) (int64, error)
	}{
		{s.cfg.OTPSweepSpec, "otp_sweep", s.sweepOTPs},
		{"@daily", "notification_cleanup", s.cleanupNotifications},
		{"@daily", "system_log_purge", s.purgeSystemLogs},
	}
	for _, j := range jobs {
		j := j
		if _, err := s.cron.AddFunc(j.spec, func() { s.run(j.name, j.fn) }); err != nil {
			return fmt.Errorf("failed to schedule %s (%q): %w", j.name, j.spec, err)
		}
	}
	s.cron.Start()
	slog.Info("job scheduler started", "jobs", len(jobs))
	return nil
}

// Stop prevents new runs and waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("job scheduler stop timed out")
	}
}

func (s *Scheduler) run(name string, fn func(context.Context) (int64, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := fn(ctx)
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(name, "error").Inc()
		slog.Error("job failed", "job", name, "error", err)
		return
	}
	metrics.JobRunsTotal.WithLabelValues(name, "ok").Inc()
	slog.Info("job finished", "job", name, "affected", n, "duration_ms", time.Since(start).Milliseconds())
}

func (s *Scheduler) sweepOTPs(ctx context.Context) (int64, error) {
	return s.otp.DeleteExpired(ctx)
}

func (s *Scheduler) cleanupNotifications(ctx context.Context) (int64, error) {
	return s.notifications.CleanupRead(ctx, s.cfg.NotificationRetentionDays)
}

func (s *Scheduler) purgeSystemLogs(ctx context.Context) (int64, error) {
	return logging.PurgeSystemLogs(s.db.WithContext(ctx), systemLogRetentionDays)
}

// slogLogger adapts cron's logger to slog.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
