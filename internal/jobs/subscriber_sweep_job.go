package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep every 30 seconds.
const DefaultSweepSchedule = "*/30 * * * * *"

// SubscriberSweeper pings realtime subscribers and drops the dead ones,
// returning how many were dropped.
type SubscriberSweeper interface {
	Sweep(ctx context.Context) int
}

// SubscriberSweepJob keeps websocket subscriptions honest. A subscriber whose
// connection died without a close frame is only noticed on the next write;
// the sweep forces that write between orders.
type SubscriberSweepJob struct {
	sweeper  SubscriberSweeper
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSubscriberSweepJob(sweeper SubscriberSweeper, schedule string, logger *slog.Logger) *SubscriberSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &SubscriberSweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		timeout:  10 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "subscriber_sweep_job"),
	}
}

// Start registers the sweep on the configured schedule.
func (j *SubscriberSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Subscriber sweep job started", "schedule", j.schedule)
	return nil
}

func (j *SubscriberSweepJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if dropped := j.sweeper.Sweep(ctx); dropped > 0 {
		j.logger.InfoContext(ctx, "Dropped dead subscribers", "count", dropped)
	}
}

// Stop waits for a running sweep to finish.
func (j *SubscriberSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Subscriber sweep job stopped")
}
