package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery is the anonymous public lookup by tracking code.
//
// Example:
//
//	query, err := NewTrackShipmentQuery("SHP7K2M9Q4XZA")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	fmt.Println(view.Status, len(view.Events))
type TrackShipmentQuery struct {
	trackingCode kernel.TrackingCode

	guard guard.ConstructorGuard
}

func NewTrackShipmentQuery(trackingCode string) (TrackShipmentQuery, error) {
	code, err := kernel.TrackingCodeFromString(trackingCode)
	if err != nil {
		return TrackShipmentQuery{}, err
	}

	return TrackShipmentQuery{trackingCode: code, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

func (q TrackShipmentQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}

// TrackShipmentResponse is the public tracking view. It carries no internal
// shipment id and no actor data.
type TrackShipmentResponse struct {
	TrackingCode string
	Status       shipment.Status
	Events       []TrackingEvent
}

// TrackingEvent holds the public fields of one ledger entry.
type TrackingEvent struct {
	Status      shipment.Status
	Description *string
	Location    *string
	CreatedAt   time.Time
}
