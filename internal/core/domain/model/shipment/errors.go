package shipment

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrReasonRequired is returned when an override carries no reason.
	ErrReasonRequired = errs.NewValueIsRequiredError("reason")

	ErrPickupAlreadyScheduled = errs.NewValueIsInvalidErrorWithCause(
		"pickup", errors.New("pickup is already scheduled"),
	)
	ErrShipmentIsTerminal = errs.NewValueIsInvalidErrorWithCause(
		"status", errors.New("shipment is in a terminal status"),
	)
)

// InvalidTransitionError carries the observed and requested statuses of a
// denied status change.
type InvalidTransitionError struct {
	Current   Status
	Requested Status
}

func NewInvalidTransitionError(current, requested Status) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Requested: requested}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s is not allowed", ErrInvalidTransition, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
