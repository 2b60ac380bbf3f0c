package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

const auditBatch = 100

// LedgerAuditor finds shipments whose stored status disagrees with their
// ledger. queries.FindLedgerInconsistenciesQueryHandler implements it.
type LedgerAuditor interface {
	Handle(ctx context.Context, query queries.FindLedgerInconsistenciesQuery) ([]queries.LedgerInconsistency, error)
}

// LedgerAuditJob periodically reports ledger inconsistencies. It never
// repairs anything.
type LedgerAuditJob struct {
	handler  LedgerAuditor
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewLedgerAuditJob(handler LedgerAuditor, schedule string, logger *slog.Logger) *LedgerAuditJob {
	return &LedgerAuditJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "ledger_audit_job"),
	}
}

func (j *LedgerAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Ledger audit job started", "schedule", j.schedule)
	return nil
}

func (j *LedgerAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Ledger audit job stopped")
}

func (j *LedgerAuditJob) run(ctx context.Context) {
	query, err := queries.NewFindLedgerInconsistenciesQuery(auditBatch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Ledger audit job misconfigured", "error", err)
		return
	}

	found, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Ledger audit job failed", "error", err)
		return
	}

	for _, inconsistency := range found {
		latest := "none"
		if inconsistency.LatestEventStatus != nil {
			latest = *inconsistency.LatestEventStatus
		}
		j.logger.WarnContext(ctx, "Ledger inconsistency",
			"shipment_id", inconsistency.ShipmentID.String(),
			"tracking_code", inconsistency.TrackingCode,
			"stored_status", inconsistency.StoredStatus,
			"latest_event_status", latest,
			"event_count", inconsistency.EventCount,
			"max_sequence", inconsistency.MaxSequence,
			"sequence_gap", inconsistency.HasSequenceGap(),
		)
	}
}
