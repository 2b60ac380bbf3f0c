package shipment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

// Revision is the (status, version) pair a shipment was loaded with. Stores
// use it as the compare-and-swap condition when persisting a mutation.
type Revision struct {
	Status  Status
	Version int64
}

// Shipment is the aggregate root for one physical consignment.
//
// Invariants:
//   - id, tracking code, owner, addresses, items and creation time never change
//   - status changes only through Transition, which also yields the ledger event
//   - every persisted mutation increments version by exactly one
type Shipment struct {
	id                kernel.UUID
	trackingCode      kernel.TrackingCode
	ownerID           kernel.UUID
	status            Status
	pickupAddress     Address
	deliveryAddress   Address
	items             []Item
	totalWeightKg     *float64
	pickupWindow      *PickupWindow
	assignedPartnerID *kernel.UUID
	createdAt         time.Time
	version           int64

	isConstructed bool
}

// NewShipment books a shipment in PENDING status at version 1. No ledger
// event is produced: a shipment without events is PENDING.
func NewShipment(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	ownerID kernel.UUID,
	pickupAddress, deliveryAddress Address,
	items []Item,
	totalWeightKg *float64,
	createdAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:        Pending,
		createdAt:     createdAt.UTC(),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setIdentity(id, trackingCode, ownerID),
		s.setAddresses(pickupAddress, deliveryAddress),
		s.setItems(items),
		positive("total_weight_kg", totalWeightKg),
	); err != nil {
		return nil, err
	}
	s.totalWeightKg = totalWeightKg

	return s, nil
}

// RestoreShipment rebuilds a persisted shipment without applying booking rules.
func RestoreShipment(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	ownerID kernel.UUID,
	status Status,
	pickupAddress, deliveryAddress Address,
	items []Item,
	totalWeightKg *float64,
	pickupWindow *PickupWindow,
	assignedPartnerID *kernel.UUID,
	createdAt time.Time,
	version int64,
) (*Shipment, error) {
	var versionErr error
	if version < 1 {
		versionErr = errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is less than 1", version))
	}

	s := &Shipment{
		status:            status,
		totalWeightKg:     totalWeightKg,
		pickupWindow:      pickupWindow,
		assignedPartnerID: assignedPartnerID,
		createdAt:         createdAt.UTC(),
		version:           version,
		isConstructed:     true,
	}

	if err := errors.Join(
		s.setIdentity(id, trackingCode, ownerID),
		s.setAddresses(pickupAddress, deliveryAddress),
		status.Validate(),
		versionErr,
	); err != nil {
		return nil, err
	}
	s.items = append([]Item(nil), items...)

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) TrackingCode() kernel.TrackingCode {
	return s.trackingCode
}

func (s *Shipment) OwnerID() kernel.UUID {
	return s.ownerID
}

func (s *Shipment) Status() Status {
	return s.status
}

func (s *Shipment) PickupAddress() Address {
	return s.pickupAddress
}

func (s *Shipment) DeliveryAddress() Address {
	return s.deliveryAddress
}

// Items returns a copy of the shipment's contents.
func (s *Shipment) Items() []Item {
	return append([]Item(nil), s.items...)
}

func (s *Shipment) TotalWeightKg() *float64 {
	return s.totalWeightKg
}

// PickupWindow returns nil until a pickup has been scheduled.
func (s *Shipment) PickupWindow() *PickupWindow {
	return s.pickupWindow
}

// AssignedPartner returns nil when no partner is assigned.
func (s *Shipment) AssignedPartner() *kernel.UUID {
	return s.assignedPartnerID
}

func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Shipment) Version() int64 {
	return s.version
}

func (s *Shipment) Revision() Revision {
	return Revision{Status: s.status, Version: s.version}
}

func (s *Shipment) IsOwnedBy(id kernel.UUID) bool {
	return s.ownerID.IsEqual(id)
}

func (s *Shipment) IsAssignedTo(partnerID kernel.UUID) bool {
	return s.assignedPartnerID != nil && s.assignedPartnerID.IsEqual(partnerID)
}

// Transition moves the shipment to status `to` and returns the unsequenced
// ledger event describing the change. Whether `by` may request the change is
// the TransitionPolicy's decision and must be checked before calling.
func (s *Shipment) Transition(
	to Status,
	by actor.Actor,
	description, location string,
	isOverride bool,
	at time.Time,
) (*Event, error) {
	if err := to.Validate(); err != nil {
		return nil, err
	}
	if to == s.status {
		return nil, NewInvalidTransitionError(s.status, to)
	}

	event, err := NewEvent(s.id, to, by, description, location, isOverride, at)
	if err != nil {
		return nil, err
	}

	s.status = to
	s.version++
	return event, nil
}

// SchedulePickup records the pickup window once, while the shipment is still
// PENDING. The returned event keeps the PENDING status.
func (s *Shipment) SchedulePickup(window PickupWindow, by actor.Actor, at time.Time) (*Event, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if s.status != Pending {
		return nil, NewInvalidTransitionError(s.status, Pending)
	}
	if s.pickupWindow != nil {
		return nil, ErrPickupAlreadyScheduled
	}

	event, err := NewEvent(s.id, Pending, by, "Pickup scheduled for "+window.String(), "", false, at)
	if err != nil {
		return nil, err
	}

	s.pickupWindow = &window
	s.version++
	return event, nil
}

// AssignPartner hands the shipment to a delivery partner. Terminal shipments
// cannot be reassigned.
func (s *Shipment) AssignPartner(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if s.status.IsTerminal() {
		return ErrShipmentIsTerminal
	}

	s.assignedPartnerID = &partnerID
	s.version++
	return nil
}

func (s *Shipment) setIdentity(id kernel.UUID, trackingCode kernel.TrackingCode, ownerID kernel.UUID) error {
	if err := errors.Join(id.Validate(), trackingCode.Validate(), ownerID.Validate()); err != nil {
		return err
	}

	s.id = id
	s.trackingCode = trackingCode
	s.ownerID = ownerID
	return nil
}

func (s *Shipment) setAddresses(pickup, delivery Address) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}

	s.pickupAddress = pickup
	s.deliveryAddress = delivery
	return nil
}

func (s *Shipment) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	s.items = append([]Item(nil), items...)
	return nil
}
