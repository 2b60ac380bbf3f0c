package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// AssignPartnerCommandHandler lets an admin assign a delivery partner.
// The assignment is a versioned update without a ledger event.
type AssignPartnerCommandHandler struct {
	uowFactory   ShipmentUoWFactory
	gate         ports.AuthorizationGate
	storeTimeout time.Duration
}

// NewAssignPartnerCommandHandler creates the admin-only assignment handler.
func NewAssignPartnerCommandHandler(
	uowFactory ShipmentUoWFactory,
	gate ports.AuthorizationGate,
	storeTimeout time.Duration,
) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory:   uowFactory,
		gate:         gate,
		storeTimeout: storeTimeout,
	}
}

func (h AssignPartnerCommandHandler) Handle(
	ctx context.Context,
	command AssignPartnerCommand,
) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	by, err := h.gate.Authorize(ctx, command.Credential())
	if err != nil {
		return nil, err
	}
	if !by.IsAdmin() {
		return nil, errs.NewForbiddenError("partner assignment", by.Role().String())
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

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, command.ShipmentID())
	if err != nil {
		return nil, err
	}

	expected := aggregate.Revision()
	if err = aggregate.AssignPartner(command.PartnerID()); err != nil {
		return nil, err
	}

	if err = shipmentRepo.Update(ctx, aggregate, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
