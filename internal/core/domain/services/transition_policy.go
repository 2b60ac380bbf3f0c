package services

import (
	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/shipment"
)

// Decision is the outcome of evaluating a requested status change.
type Decision struct {
	Allowed        bool
	ReasonRequired bool
}

// linearSuccessor is the happy path of the lifecycle.
var linearSuccessor = map[shipment.Status]shipment.Status{
	shipment.Pending:        shipment.PickedUp,
	shipment.PickedUp:       shipment.InTransit,
	shipment.InTransit:      shipment.OutForDelivery,
	shipment.OutForDelivery: shipment.Delivered,
}

// transitionTable maps role to current status to the single status that role
// may request through the normal path. A missing entry means no transition.
var transitionTable = map[actor.Role]map[shipment.Status]shipment.Status{
	actor.Customer: {shipment.Pending: shipment.Cancelled},
	actor.Partner:  linearSuccessor,
	actor.Admin:    linearSuccessor,
}

// TransitionPolicy decides which status changes an actor role may request.
//
// Rules:
//   - self-transitions are denied for every role, override included
//   - customers may cancel a PENDING shipment and nothing else
//   - partners and admins may request the next linear status only
//   - the override path is admin-only, accepts any other pair and requires
//     a reason; it is the only way out of a terminal status
//
// Example:
//
//	policy := services.NewTransitionPolicy()
//	d := policy.Evaluate(shipment.InTransit, shipment.OutForDelivery, actor.Partner, false)
//	// d.Allowed == true, d.ReasonRequired == false
type TransitionPolicy struct{}

func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// Evaluate is a pure function of its arguments.
func (TransitionPolicy) Evaluate(
	current, requested shipment.Status,
	role actor.Role,
	override bool,
) Decision {
	if current.Validate() != nil || requested.Validate() != nil || role.Validate() != nil {
		return Decision{}
	}
	if current == requested {
		return Decision{}
	}

	if override {
		if role != actor.Admin {
			return Decision{}
		}
		return Decision{Allowed: true, ReasonRequired: true}
	}

	next, ok := transitionTable[role][current]
	return Decision{Allowed: ok && next == requested}
}

// NextStatus returns the status the role may request from current through the
// normal path, if any. Clients use it to offer the single valid action.
func (TransitionPolicy) NextStatus(current shipment.Status, role actor.Role) (shipment.Status, bool) {
	next, ok := transitionTable[role][current]
	return next, ok
}
