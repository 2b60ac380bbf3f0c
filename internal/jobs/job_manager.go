package jobs

import (
	"fmt"
	"log/slog"
)

// Config holds the cron schedules (with a seconds field) of the jobs.
type Config struct {
	OutboxRelaySchedule string
	OutboxBatchSize     int
	LedgerAuditSchedule string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
	ledgerAuditJob *LedgerAuditJob
}

// NewJobManager builds the jobs. A nil relayer disables the outbox relay:
// messages then stay pending until a broker is configured.
func NewJobManager(relayer OutboxRelayer, auditor LedgerAuditor, cfg Config, logger *slog.Logger) *JobManager {
	jm := &JobManager{
		ledgerAuditJob: NewLedgerAuditJob(auditor, cfg.LedgerAuditSchedule, logger),
	}
	if relayer != nil {
		jm.outboxRelayJob = NewOutboxRelayJob(relayer, cfg.OutboxRelaySchedule, cfg.OutboxBatchSize, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.outboxRelayJob != nil {
		if err := jm.outboxRelayJob.Start(); err != nil {
			return fmt.Errorf("failed to start outbox relay job: %w", err)
		}
	}

	if err := jm.ledgerAuditJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		if jm.outboxRelayJob != nil {
			jm.outboxRelayJob.Stop()
		}
		return fmt.Errorf("failed to start ledger audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks.
func (jm *JobManager) StopAll() {
	if jm.outboxRelayJob != nil {
		jm.outboxRelayJob.Stop()
	}
	jm.ledgerAuditJob.Stop()
}
