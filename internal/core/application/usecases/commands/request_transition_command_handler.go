package commands

import (
	"context"
	"strings"
	"time"

	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// RequestTransitionCommandHandler is the transition engine: it authorizes the
// caller, checks the policy and writes the status swap together with its
// ledger event.
//
// Example:
//
//	handler := NewRequestTransitionCommandHandler(uowFactory, gate, 3*time.Second)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // another writer moved the shipment first; re-read and resubmit
//	case errors.Is(err, shipment.ErrInvalidTransition):
//	    var ite *shipment.InvalidTransitionError
//	    errors.As(err, &ite)
//	}
type RequestTransitionCommandHandler struct {
	uowFactory   LedgerUoWFactory
	gate         ports.AuthorizationGate
	policy       services.TransitionPolicy
	storeTimeout time.Duration
	now          func() time.Time
}

func NewRequestTransitionCommandHandler(
	uowFactory LedgerUoWFactory,
	gate ports.AuthorizationGate,
	storeTimeout time.Duration,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory:   uowFactory,
		gate:         gate,
		policy:       services.NewTransitionPolicy(),
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

// Handle runs a single transition attempt. Conflict is returned when the
// shipment changed after it was loaded; the handler never retries and never
// appends an event for a lost swap.
func (h RequestTransitionCommandHandler) Handle(
	ctx context.Context,
	command RequestTransitionCommand,
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

	if command.Override() && !by.IsAdmin() {
		return TransitionResult{}, errs.NewForbiddenError("status override", by.Role().String())
	}
	if err = checkScope(aggregate, by); err != nil {
		return TransitionResult{}, err
	}

	decision := h.policy.Evaluate(aggregate.Status(), command.RequestedStatus(), by.Role(), command.Override())
	if !decision.Allowed {
		return TransitionResult{}, shipment.NewInvalidTransitionError(aggregate.Status(), command.RequestedStatus())
	}
	if decision.ReasonRequired && strings.TrimSpace(command.Reason()) == "" {
		return TransitionResult{}, shipment.ErrReasonRequired
	}

	expected := aggregate.Revision()
	event, err := aggregate.Transition(
		command.RequestedStatus(),
		by,
		eventDescription(command),
		command.Location(),
		command.Override(),
		h.now(),
	)
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

	event, err = event.WithSequence(sequence)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{Shipment: aggregate, Event: event}, nil
}

// checkScope restricts which shipments a role may touch at all: customers only
// their own, partners only unassigned ones or those assigned to them.
func checkScope(aggregate *shipment.Shipment, by actor.Actor) error {
	switch by.Role() {
	case actor.Customer:
		if !aggregate.IsOwnedBy(by.ID()) {
			return errs.NewForbiddenError("transition of a shipment owned by another customer", by.Role().String())
		}
	case actor.Partner:
		if aggregate.AssignedPartner() != nil && !aggregate.IsAssignedTo(by.ID()) {
			return errs.NewForbiddenError("scan of a shipment assigned to another partner", by.Role().String())
		}
	case actor.Admin:
		return nil
	default:
		return errs.NewForbiddenError("transition", by.Role().String())
	}
	return nil
}

// eventDescription picks the ledger text. An override always records its
// reason; otherwise the free-form description wins and the reason is a fallback.
func eventDescription(command RequestTransitionCommand) string {
	if command.Override() {
		return strings.TrimSpace(command.Reason())
	}
	if d := strings.TrimSpace(command.Description()); d != "" {
		return d
	}
	return strings.TrimSpace(command.Reason())
}
