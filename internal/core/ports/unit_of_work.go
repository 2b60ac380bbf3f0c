package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// A status swap and its ledger append are committed together or not at all.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a read-write transaction.
	Begin(ctx context.Context) error

	// BeginReadOnly starts a read-only snapshot transaction, so that a shipment
	// and its events are read from the same point in time.
	BeginReadOnly(ctx context.Context) error

	// Commit commits the current transaction. Ledger events appended in the
	// transaction are written to the outbox before the commit.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ShipmentRepository returns a ShipmentRepository bound to the current transaction.
	ShipmentRepository() ShipmentRepository

	// EventLedger returns an EventLedger bound to the current transaction.
	EventLedger() EventLedger

	// OutboxRepository returns an OutboxRepository bound to the current transaction.
	OutboxRepository() OutboxRepository
}
