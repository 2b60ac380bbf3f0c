package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// CreateShipmentCommandHandler books shipments. The authenticated actor
// becomes the owner; the shipment starts PENDING with an empty ledger.
type CreateShipmentCommandHandler struct {
	uowFactory   ShipmentUoWFactory
	gate         ports.AuthorizationGate
	storeTimeout time.Duration
	now          func() time.Time
}

// NewCreateShipmentCommandHandler bounds each store round trip by
// storeTimeout; zero leaves the caller's deadline alone.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	gate ports.AuthorizationGate,
	storeTimeout time.Duration,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory:   uowFactory,
		gate:         gate,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

func (h CreateShipmentCommandHandler) Handle(
	ctx context.Context,
	command CreateShipmentCommand,
) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	by, err := h.gate.Authorize(ctx, command.Credential())
	if err != nil {
		return nil, err
	}

	code, err := kernel.NewTrackingCode()
	if err != nil {
		return nil, err
	}

	aggregate, err := shipment.NewShipment(
		kernel.NewUUID(),
		code,
		by.ID(),
		command.PickupAddress(),
		command.DeliveryAddress(),
		command.Items(),
		command.TotalWeightKg(),
		h.now(),
	)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, h.storeTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
