package ports

import (
	"context"
	"iter"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// EventLedger is the append-only log of shipment events. Entries are never
// updated or removed.
type EventLedger interface {
	// Append stores the event with the next sequence of its shipment
	// (previous maximum plus one) and returns that sequence.
	Append(ctx context.Context, event *shipment.Event) (int64, error)

	// ListByShipment yields the shipment's events by ascending sequence.
	// The sequence is lazy and restartable: each range re-reads the ledger.
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) iter.Seq2[*shipment.Event, error]

	// Latest returns the event with the highest sequence, or nil when the
	// shipment has no events yet.
	Latest(ctx context.Context, shipmentID kernel.UUID) (*shipment.Event, error)
}
