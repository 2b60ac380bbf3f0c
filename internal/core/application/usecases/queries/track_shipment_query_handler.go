package queries

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/shipment"
)

// TrackShipmentQueryHandler serves public tracking. The shipment and its
// events are read inside one snapshot so the status always matches the
// latest event returned.
type TrackShipmentQueryHandler struct {
	uowFactory   SnapshotUoWFactory
	storeTimeout time.Duration
}

func NewTrackShipmentQueryHandler(uowFactory SnapshotUoWFactory, storeTimeout time.Duration) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{uowFactory: uowFactory, storeTimeout: storeTimeout}
}

func (h TrackShipmentQueryHandler) Handle(ctx context.Context, query TrackShipmentQuery) (TrackShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackShipmentResponse{}, err
	}

	ctx, cancel := withStoreTimeout(ctx, h.storeTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.BeginReadOnly(ctx); err != nil {
		return TrackShipmentResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().GetByTrackingCode(ctx, query.TrackingCode())
	if err != nil {
		return TrackShipmentResponse{}, err
	}

	events, err := shipment.CollectEvents(uow.EventLedger().ListByShipment(ctx, aggregate.ID()))
	if err != nil {
		return TrackShipmentResponse{}, err
	}

	response := TrackShipmentResponse{
		TrackingCode: aggregate.TrackingCode().String(),
		Status:       aggregate.Status(),
		Events:       make([]TrackingEvent, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, TrackingEvent{
			Status:      e.Status(),
			Description: e.Description(),
			Location:    e.Location(),
			CreatedAt:   e.CreatedAt(),
		})
	}

	return response, nil
}
