package commands

import "shipping/internal/core/domain/model/shipment"

// TransitionResult is the shipment projection returned after a ledger write:
// the updated aggregate and the event that was appended for it.
type TransitionResult struct {
	Shipment *shipment.Shipment
	Event    *shipment.Event
}
