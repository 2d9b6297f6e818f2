package jobs

import (
	"context"
	"time"

	"supplyhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultPurgeSchedule = "0 0 3 * * *"

type OrderPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeTerminalOrdersCommand) (int64, error)
}

// PurgeTerminalOrdersJob deletes delivered and cancelled orders once they
// are older than the retention.
type PurgeTerminalOrdersJob struct {
	handler   OrderPurger
	retention time.Duration
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewPurgeTerminalOrdersJob(
	handler OrderPurger,
	retention time.Duration,
	schedule string,
	logger *zap.Logger,
) *PurgeTerminalOrdersJob {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	return &PurgeTerminalOrdersJob{
		handler:   handler,
		retention: retention,
		schedule:  schedule,
		timeout:   5 * time.Minute,
		cron:      newCron(),
		logger:    logger.With(zap.String("component", "purge_terminal_orders_job")),
	}
}

func (j *PurgeTerminalOrdersJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	cmd, err := commands.NewPurgeTerminalOrdersCommand(j.retention)
	if err != nil {
		j.logger.Error("invalid purge retention", zap.Duration("retention", j.retention), zap.Error(err))
		return
	}
	deleted, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("purge terminal orders failed", zap.Error(err))
		return
	}
	j.logger.Info("purged terminal orders", zap.Int64("deleted", deleted), zap.Duration("retention", j.retention))
}

func (j *PurgeTerminalOrdersJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("purge terminal orders job started",
		zap.String("schedule", j.schedule),
		zap.Duration("retention", j.retention),
	)
	return nil
}

func (j *PurgeTerminalOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("purge terminal orders job stopped")
}
