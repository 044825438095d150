package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mamadbah2/agritech/internal/config"
	"github.com/mamadbah2/agritech/internal/domain/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakePublisher struct {
	mu    sync.Mutex
	calls int
}

func (f *fakePublisher) Publish(_ context.Context, now time.Time) (models.DashboardSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return models.DashboardSnapshot{Date: models.DateOf(now)}, nil
}

type fakeSweeper struct {
	mu      sync.Mutex
	maxIdle time.Duration
}

func (f *fakeSweeper) Sweep(maxIdle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxIdle = maxIdle
	return 2
}

func testConfig() config.Config {
	return config.Config{
		Sessions:  config.SessionConfig{MaxIdle: 30 * time.Minute, SweepSchedule: "*/5 * * * *"},
		Reporting: config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Africa/Conakry"},
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s, err := NewScheduler(testConfig(), &fakePublisher{}, &fakeSweeper{}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.CronSchedule = "every friday"

	s, err := NewScheduler(cfg, &fakePublisher{}, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestSchedulerRejectsUnknownTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Mars/Olympus"

	_, err := NewScheduler(cfg, nil, nil, nil)
	assert.Error(t, err)
}

func TestJobsCallDependencies(t *testing.T) {
	pub := &fakePublisher{}
	sw := &fakeSweeper{}
	s, err := NewScheduler(testConfig(), pub, sw, nil)
	require.NoError(t, err)

	s.publishSnapshot()
	s.sweepSessions()

	assert.Equal(t, 1, pub.calls)
	assert.Equal(t, 30*time.Minute, sw.maxIdle)
}
