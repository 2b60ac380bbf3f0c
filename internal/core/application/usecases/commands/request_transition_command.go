package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand asks to move a shipment to a new status.
// The credential is resolved by the handler; nothing about the actor is
// taken from the command itself.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(shipmentID, shipment.Returned, bearerToken,
//	    "damaged in transit", "", "", true)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	requested   shipment.Status
	credential  string
	reason      string
	location    string
	description string
	override    bool

	guard guard.ConstructorGuard
}

func NewRequestTransitionCommand(
	shipmentID kernel.UUID,
	requested shipment.Status,
	credential, reason, location, description string,
	override bool,
) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		credential:  credential,
		reason:      reason,
		location:    location,
		description: description,
		override:    override,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setRequested(requested),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return cmd, nil
}

func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

func (c RequestTransitionCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c RequestTransitionCommand) RequestedStatus() shipment.Status {
	return c.requested
}

func (c RequestTransitionCommand) Credential() string {
	return c.credential
}

func (c RequestTransitionCommand) Reason() string {
	return c.reason
}

func (c RequestTransitionCommand) Location() string {
	return c.location
}

func (c RequestTransitionCommand) Description() string {
	return c.description
}

// Override reports whether the caller asked to bypass adjacency rules.
func (c RequestTransitionCommand) Override() bool {
	return c.override
}

func (c *RequestTransitionCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipmentID = id
	return nil
}

func (c *RequestTransitionCommand) setRequested(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.requested = status
	return nil
}
