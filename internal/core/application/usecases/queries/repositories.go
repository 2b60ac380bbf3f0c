// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models for specific use cases and never mutate state.
package queries

import (
	"context"
	"time"

	"shipping/internal/core/ports"
)

type (
	// SnapshotUoW reads a shipment and its ledger from one consistent
	// point in time.
	SnapshotUoW interface {
		BeginReadOnly(ctx context.Context) error
		Rollback(ctx context.Context) error
		ShipmentRepository() ports.ShipmentRepository
		EventLedger() ports.EventLedger
	}

	// SnapshotUoWFactory creates new snapshot unit of work instances.
	SnapshotUoWFactory interface {
		Create() SnapshotUoW
	}
)

func withStoreTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
