package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository is the durable store of shipment records with their
// addresses and items.
type ShipmentRepository interface {
	// Add persists a newly booked shipment.
	// Returns a conflict error if the id or tracking code already exists.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists a mutated shipment only if the stored status and version
	// still equal expected. Returns a conflict error when another writer won
	// and a not-found error when the shipment does not exist.
	Update(ctx context.Context, aggregate *shipment.Shipment, expected shipment.Revision) error

	// Get retrieves a shipment by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByTrackingCode retrieves a shipment by its public tracking code.
	GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*shipment.Shipment, error)
}
