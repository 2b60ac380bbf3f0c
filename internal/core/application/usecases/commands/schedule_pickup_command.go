package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrSchedulePickupCommandIsNotConstructed = errors.New(
	"SchedulePickupCommand must be created via NewSchedulePickupCommand constructor",
)

type SchedulePickupCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	credential string
	window     shipment.PickupWindow

	guard guard.ConstructorGuard
}

func NewSchedulePickupCommand(
	shipmentID kernel.UUID,
	credential string,
	window shipment.PickupWindow,
) (SchedulePickupCommand, error) {
	cmd := SchedulePickupCommand{
		credential: credential,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setWindow(window),
	); err != nil {
		return SchedulePickupCommand{}, err
	}

	return cmd, nil
}

func (c SchedulePickupCommand) Validate() error {
	return c.guard.Validate(ErrSchedulePickupCommandIsNotConstructed)
}

func (c SchedulePickupCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c SchedulePickupCommand) Credential() string {
	return c.credential
}

func (c SchedulePickupCommand) Window() shipment.PickupWindow {
	return c.window
}

func (c *SchedulePickupCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipmentID = id
	return nil
}

func (c *SchedulePickupCommand) setWindow(window shipment.PickupWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}

	c.window = window
	return nil
}
