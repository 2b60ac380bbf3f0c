package commands

import (
	"context"
	"time"

	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// SchedulePickupCommandHandler records the pickup window of a PENDING
// shipment and appends the matching PENDING ledger event in one transaction.
// Only the owner or an admin may schedule.
type SchedulePickupCommandHandler struct {
	uowFactory   LedgerUoWFactory
	gate         ports.AuthorizationGate
	storeTimeout time.Duration
	now          func() time.Time
}

func NewSchedulePickupCommandHandler(
	uowFactory LedgerUoWFactory,
	gate ports.AuthorizationGate,
	storeTimeout time.Duration,
) SchedulePickupCommandHandler {
	return SchedulePickupCommandHandler{
		uowFactory:   uowFactory,
		gate:         gate,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

func (h SchedulePickupCommandHandler) Handle(
	ctx context.Context,
	command SchedulePickupCommand,
) (TransitionResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionResult{}, err
	}

	by, err := h.gate.Authorize(ctx, command.Credential())
	if err != nil {
		return TransitionResult{}, err
	}

	ctx, cancel := withStoreTimeout(ctx, h.storeTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, command.ShipmentID())
	if err != nil {
		return TransitionResult{}, err
	}

	if !by.IsAdmin() && !aggregate.IsOwnedBy(by.ID()) {
		return TransitionResult{}, errs.NewForbiddenError("pickup scheduling", by.Role().String())
	}

	expected := aggregate.Revision()
	event, err := aggregate.SchedulePickup(command.Window(), by, h.now())
	if err != nil {
		return TransitionResult{}, err
	}

	if err = shipmentRepo.Update(ctx, aggregate, expected); err != nil {
		return TransitionResult{}, err
	}

	sequence, err := uow.EventLedger().Append(ctx, event)
	if err != nil {
		return TransitionResult{}, err
	}

	if event, err = event.WithSequence(sequence); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{Shipment: aggregate, Event: event}, nil
}
