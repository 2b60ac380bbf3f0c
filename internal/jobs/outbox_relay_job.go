package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayer publishes one batch of pending outbox messages.
// commands.RelayOutboxCommandHandler implements it.
type OutboxRelayer interface {
	Handle(ctx context.Context, command commands.RelayOutboxCommand) (commands.RelayOutboxResult, error)
}

// OutboxRelayJob moves pending status-change notifications to the broker on
// a cron schedule.
type OutboxRelayJob struct {
	handler   OutboxRelayer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxRelayJob(handler OutboxRelayer, schedule string, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}

func (j *OutboxRelayJob) run(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}

	if result.Failed > 0 {
		j.logger.WarnContext(ctx, "Outbox messages failed to publish",
			"published", result.Published, "failed", result.Failed, "deferred", result.Deferred)
	} else if result.Published > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "published", result.Published)
	}
}
