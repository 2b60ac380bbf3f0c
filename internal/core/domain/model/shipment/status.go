package shipment

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
//
//	PENDING ──> PICKED_UP ──> IN_TRANSIT ──> OUT_FOR_DELIVERY ──> DELIVERED
//
// CANCELLED and RETURNED are side exits. DELIVERED, CANCELLED and RETURNED
// are terminal: only an administrative override moves a shipment out of them.
// Which actor may request which change is decided by services.TransitionPolicy.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Pending
	PickedUp
	InTransit
	OutForDelivery
	Delivered
	Cancelled
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		PickedUp:       "PICKED_UP",
		InTransit:      "IN_TRANSIT",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
		Returned:       "RETURNED",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, PickedUp, InTransit, OutForDelivery, Delivered, Cancelled, Returned}
}

// ParseStatus accepts the upper-case wire names, case-insensitively.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range AllStatuses() {
		if status.String() == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Returned {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no outbound transition exists under normal policy.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Returned
}
