package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/config"
	"github.com/mamadbah2/agritech/internal/domain/models"
)

// Publisher produces and distributes the daily dashboard snapshot.
type Publisher interface {
	Publish(ctx context.Context, now time.Time) (models.DashboardSnapshot, error)
}

// Sweeper evicts idle view state.
type Sweeper interface {
	Sweep(maxIdle time.Duration) int
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	publisher Publisher
	sweeper   Sweeper
	cfg       config.Config
	location  *time.Location
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler running in the configured timezone.
func NewScheduler(cfg config.Config, publisher Publisher, sweeper Sweeper, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		publisher: publisher,
		sweeper:   sweeper,
		cfg:       cfg,
		location:  loc,
		logger:    logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("report_schedule", s.cfg.Reporting.CronSchedule),
		zap.String("sweep_schedule", s.cfg.Sessions.SweepSchedule),
		zap.String("timezone", s.location.String()),
	)

	if s.publisher != nil {
		if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.publishSnapshot); err != nil {
			return fmt.Errorf("schedule dashboard report: %w", err)
		}
	}

	if s.sweeper != nil {
		if _, err := s.cron.AddFunc(s.cfg.Sessions.SweepSchedule, s.sweepSessions); err != nil {
			return fmt.Errorf("schedule session sweep: %w", err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) publishSnapshot() {
	s.logger.Info("generating dashboard snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.publisher.Publish(ctx, time.Now().In(s.location)); err != nil {
		s.logger.Error("failed to publish dashboard snapshot", zap.Error(err))
		return
	}
	s.logger.Info("dashboard snapshot published successfully")
}

func (s *Scheduler) sweepSessions() {
	if n := s.sweeper.Sweep(s.cfg.Sessions.MaxIdle); n > 0 {
		s.logger.Info("evicted idle sessions", zap.Int("count", n))
	}
}
