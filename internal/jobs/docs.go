// Package jobs provides scheduled background tasks for the shipping service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and skip a tick
// while the previous one is still running.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending status-change notifications to Kafka
// (default every 5 seconds)
// 2. LedgerAuditJob - logs shipments whose stored status disagrees with their
// ledger, or whose event sequences have gaps (default every 5 minutes)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, auditHandler, jobs.Config{
//		OutboxRelaySchedule: "*/5 * * * * *",
//		OutboxBatchSize:     100,
//		LedgerAuditSchedule: "0 */5 * * * *",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed relay run is logged; unpublished messages are retried on the next tick
// - Audit findings are logged at warn level and never repaired automatically
// - Failed job starts will stop any already running jobs
package jobs
