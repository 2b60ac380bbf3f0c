package commands

import (
	"errors"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand books a new shipment for the caller behind credential.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	credential      string
	pickupAddress   shipment.Address
	deliveryAddress shipment.Address
	items           []shipment.Item
	totalWeightKg   *float64

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	credential string,
	pickupAddress, deliveryAddress shipment.Address,
	items []shipment.Item,
	totalWeightKg *float64,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		credential:    credential,
		totalWeightKg: totalWeightKg,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAddresses(pickupAddress, deliveryAddress),
		cmd.setItems(items),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) Credential() string {
	return c.credential
}

func (c CreateShipmentCommand) PickupAddress() shipment.Address {
	return c.pickupAddress
}

func (c CreateShipmentCommand) DeliveryAddress() shipment.Address {
	return c.deliveryAddress
}

func (c CreateShipmentCommand) Items() []shipment.Item {
	return append([]shipment.Item(nil), c.items...)
}

func (c CreateShipmentCommand) TotalWeightKg() *float64 {
	return c.totalWeightKg
}

func (c *CreateShipmentCommand) setAddresses(pickup, delivery shipment.Address) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}

	c.pickupAddress = pickup
	c.deliveryAddress = delivery
	return nil
}

func (c *CreateShipmentCommand) setItems(items []shipment.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = append([]shipment.Item(nil), items...)
	return nil
}
