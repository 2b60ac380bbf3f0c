package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand hands a shipment to a delivery partner.
type AssignPartnerCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	partnerID  kernel.UUID
	credential string

	guard guard.ConstructorGuard
}

func NewAssignPartnerCommand(shipmentID, partnerID kernel.UUID, credential string) (AssignPartnerCommand, error) {
	cmd := AssignPartnerCommand{
		credential: credential,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(shipmentID.Validate(), partnerID.Validate()); err != nil {
		return AssignPartnerCommand{}, err
	}
	cmd.shipmentID = shipmentID
	cmd.partnerID = partnerID

	return cmd, nil
}

func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

func (c AssignPartnerCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c AssignPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c AssignPartnerCommand) Credential() string {
	return c.credential
}
