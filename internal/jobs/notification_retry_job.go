package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultNotificationRetrySchedule = "*/5 * * * * *"

// Flusher redelivers queued change events and reports how many went out.
type Flusher interface {
	Flush(ctx context.Context) int
	Pending() map[string]int
}

// NotificationRetryJob redelivers change events that a sink failed to
// accept when they were published.
type NotificationRetryJob struct {
	flusher  Flusher
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewNotificationRetryJob(flusher Flusher, schedule string, logger *zap.Logger) *NotificationRetryJob {
	if schedule == "" {
		schedule = DefaultNotificationRetrySchedule
	}
	return &NotificationRetryJob{
		flusher:  flusher,
		schedule: schedule,
		cron:     newCron(),
		logger:   logger.With(zap.String("component", "notification_retry_job")),
	}
}

// Run flushes once.
func (j *NotificationRetryJob) Run(ctx context.Context) {
	delivered := j.flusher.Flush(ctx)
	if delivered == 0 {
		return
	}
	j.logger.Info("redelivered change events",
		zap.Int("delivered", delivered),
		zap.Any("pending", j.flusher.Pending()),
	)
}

func (j *NotificationRetryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("notification retry job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *NotificationRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("notification retry job stopped")
}

// newCron uses six-field specs and skips a run while the previous one is
// still going.
func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}
