package pgtest

import (
	"time"

	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// NewShipment books a PENDING shipment with two items for owner.
func NewShipment(owner kernel.UUID) (*shipment.Shipment, error) {
	pickup, err := shipment.NewAddress("Jane Roe", "+1 555 0100", "1 Main St", "Springfield", "IL", "62701", "US")
	if err != nil {
		return nil, err
	}
	pickup, err = pickup.WithCoordinates(39.7817, -89.6501)
	if err != nil {
		return nil, err
	}

	delivery, err := shipment.NewAddress("John Doe", "", "9 Elm Rd", "Shelbyville", "", "62565", "US")
	if err != nil {
		return nil, err
	}

	weight := 1.2
	books, err := shipment.NewItem("Books", 2, &weight, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	lamp, err := shipment.NewItem("Desk lamp", 1, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	code, err := kernel.NewTrackingCode()
	if err != nil {
		return nil, err
	}

	total := 3.4
	return shipment.NewShipment(
		kernel.NewUUID(), code, owner,
		pickup, delivery,
		[]shipment.Item{books, lamp},
		&total,
		time.Now().UTC().Truncate(time.Microsecond),
	)
}

// NewActor returns an actor with a fresh id.
func NewActor(role actor.Role) actor.Actor {
	a, err := actor.NewActor(kernel.NewUUID(), role)
	if err != nil {
		panic(err)
	}
	return a
}
