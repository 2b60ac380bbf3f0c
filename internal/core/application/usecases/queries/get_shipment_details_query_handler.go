package queries

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// GetShipmentDetailsQueryHandler returns a shipment with its ledger to the
// owner, an admin or the assigned partner.
type GetShipmentDetailsQueryHandler struct {
	uowFactory   SnapshotUoWFactory
	gate         ports.AuthorizationGate
	storeTimeout time.Duration
}

func NewGetShipmentDetailsQueryHandler(
	uowFactory SnapshotUoWFactory,
	gate ports.AuthorizationGate,
	storeTimeout time.Duration,
) GetShipmentDetailsQueryHandler {
	return GetShipmentDetailsQueryHandler{uowFactory: uowFactory, gate: gate, storeTimeout: storeTimeout}
}

func (h GetShipmentDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentDetailsQuery,
) (GetShipmentDetailsResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentDetailsResponse{}, err
	}

	by, err := h.gate.Authorize(ctx, query.Credential())
	if err != nil {
		return GetShipmentDetailsResponse{}, err
	}

	ctx, cancel := withStoreTimeout(ctx, h.storeTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = uow.BeginReadOnly(ctx); err != nil {
		return GetShipmentDetailsResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentDetailsResponse{}, err
	}

	if !canView(aggregate, by) {
		return GetShipmentDetailsResponse{}, errs.NewForbiddenError("shipment details", by.Role().String())
	}

	events, err := shipment.CollectEvents(uow.EventLedger().ListByShipment(ctx, aggregate.ID()))
	if err != nil {
		return GetShipmentDetailsResponse{}, err
	}

	return GetShipmentDetailsResponse{Shipment: aggregate, Events: events}, nil
}

func canView(aggregate *shipment.Shipment, by actor.Actor) bool {
	switch by.Role() {
	case actor.Admin:
		return true
	case actor.Customer:
		return aggregate.IsOwnedBy(by.ID())
	case actor.Partner:
		return aggregate.IsAssignedTo(by.ID())
	default:
		return false
	}
}
