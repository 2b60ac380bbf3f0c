package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentDetailsQueryIsNotConstructed = errors.New(
	"GetShipmentDetailsQuery must be created via NewGetShipmentDetailsQuery constructor",
)

type GetShipmentDetailsQuery struct {
	shipmentID kernel.UUID
	credential string

	guard guard.ConstructorGuard
}

func NewGetShipmentDetailsQuery(shipmentID kernel.UUID, credential string) (GetShipmentDetailsQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentDetailsQuery{}, err
	}

	return GetShipmentDetailsQuery{
		shipmentID: shipmentID,
		credential: credential,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentDetailsQueryIsNotConstructed)
}

func (q GetShipmentDetailsQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

func (q GetShipmentDetailsQuery) Credential() string {
	return q.credential
}

// GetShipmentDetailsResponse is the private view of a shipment with its full
// ledger, actor data and override flags included.
type GetShipmentDetailsResponse struct {
	Shipment *shipment.Shipment
	Events   []*shipment.Event
}
