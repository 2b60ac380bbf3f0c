package shipment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"shipping/internal/pkg/errs"
)

const pickupDateLayout = "2006-01-02"

var (
	ErrPickupWindowIsNotConstructed = errors.New("PickupWindow must be created via NewPickupWindow constructor")

	timeSlotPattern = regexp.MustCompile(`^(\d{2}:\d{2})-(\d{2}:\d{2})$`)
)

// PickupWindow is the day and time slot a customer booked for collection.
type PickupWindow struct {
	date     time.Time
	timeSlot string

	isConstructed bool
}

// NewPickupWindow parses a YYYY-MM-DD date and an HH:MM-HH:MM slot whose
// start precedes its end.
func NewPickupWindow(date, timeSlot string) (PickupWindow, error) {
	parsedDate, err := time.Parse(pickupDateLayout, strings.TrimSpace(date))
	if err != nil {
		return PickupWindow{}, errs.NewValueIsInvalidErrorWithCause("pickup_date", err)
	}

	slot := strings.TrimSpace(timeSlot)
	if err = validateTimeSlot(slot); err != nil {
		return PickupWindow{}, err
	}

	return PickupWindow{date: parsedDate, timeSlot: slot, isConstructed: true}, nil
}

func validateTimeSlot(slot string) error {
	match := timeSlotPattern.FindStringSubmatch(slot)
	if match == nil {
		return errs.NewValueIsInvalidErrorWithCause("time_slot", fmt.Errorf("%q is not HH:MM-HH:MM", slot))
	}

	start, err := time.Parse("15:04", match[1])
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("time_slot", err)
	}
	end, err := time.Parse("15:04", match[2])
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("time_slot", err)
	}
	if !start.Before(end) {
		return errs.NewValueIsInvalidErrorWithCause("time_slot", fmt.Errorf("%s does not start before it ends", slot))
	}

	return nil
}

func (w PickupWindow) Validate() error {
	if !w.isConstructed {
		return ErrPickupWindowIsNotConstructed
	}
	return nil
}

func (w PickupWindow) Date() time.Time {
	return w.date
}

func (w PickupWindow) TimeSlot() string {
	return w.timeSlot
}

func (w PickupWindow) String() string {
	return fmt.Sprintf("%s (%s)", w.date.Format(pickupDateLayout), w.timeSlot)
}
