// Package eventledger is the append-only PostgreSQL event ledger. Rows are
// only ever inserted; a trigger in the schema rejects updates and deletes.
package eventledger

import (
	"time"

	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// EventDTO is the row of the shipment_events table.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;uniqueIndex:ux_shipment_events_sequence,priority:1"`
	Sequence    int64     `gorm:"uniqueIndex:ux_shipment_events_sequence,priority:2"`
	Status      string    `gorm:"size:32"`
	Description *string
	Location    *string
	ActorID     uuid.UUID `gorm:"type:uuid"`
	ActorRole   string    `gorm:"size:16"`
	IsOverride  bool
	CreatedAt   time.Time
}

func (EventDTO) TableName() string {
	return "shipment_events"
}

func fromDomain(event *shipment.Event, sequence int64) EventDTO {
	return EventDTO{
		ID:          event.ID().Bytes(),
		ShipmentID:  event.ShipmentID().Bytes(),
		Sequence:    sequence,
		Status:      event.Status().String(),
		Description: event.Description(),
		Location:    event.Location(),
		ActorID:     event.ActorID().Bytes(),
		ActorRole:   event.ActorRole().String(),
		IsOverride:  event.IsOverride(),
		CreatedAt:   event.CreatedAt(),
	}
}

func toDomain(dto EventDTO) (*shipment.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	role, err := actor.ParseRole(dto.ActorRole)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreEvent(
		id, shipmentID, dto.Sequence, status,
		dto.Description, dto.Location,
		actorID, role, dto.IsOverride, dto.CreatedAt,
	)
}
