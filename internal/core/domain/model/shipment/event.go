package shipment

import (
	"errors"
	"iter"
	"strings"
	"time"

	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is one immutable ledger entry: the status a shipment moved to, who
// moved it and why. Sequence is zero until the ledger assigns one on append.
type Event struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	sequence    int64
	status      Status
	description *string
	location    *string
	actorID     kernel.UUID
	actorRole   actor.Role
	isOverride  bool
	createdAt   time.Time

	isConstructed bool
}

// NewEvent builds an unsequenced event. Blank description and location are
// stored as absent. An override event must carry a description (its reason).
func NewEvent(
	shipmentID kernel.UUID,
	status Status,
	by actor.Actor,
	description, location string,
	isOverride bool,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(shipmentID.Validate(), status.Validate(), by.Validate()); err != nil {
		return nil, err
	}

	e := &Event{
		id:            kernel.NewUUID(),
		shipmentID:    shipmentID,
		status:        status,
		description:   optional(description),
		location:      optional(location),
		actorID:       by.ID(),
		actorRole:     by.Role(),
		isOverride:    isOverride,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if isOverride && e.description == nil {
		return nil, ErrReasonRequired
	}

	return e, nil
}

// RestoreEvent rebuilds a persisted event.
func RestoreEvent(
	id, shipmentID kernel.UUID,
	sequence int64,
	status Status,
	description, location *string,
	actorID kernel.UUID,
	actorRole actor.Role,
	isOverride bool,
	createdAt time.Time,
) (*Event, error) {
	var sequenceErr error
	if sequence < 1 {
		sequenceErr = errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}

	if err := errors.Join(
		id.Validate(),
		shipmentID.Validate(),
		sequenceErr,
		status.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return nil, err
	}

	return &Event{
		id:            id,
		shipmentID:    shipmentID,
		sequence:      sequence,
		status:        status,
		description:   description,
		location:      location,
		actorID:       actorID,
		actorRole:     actorRole,
		isOverride:    isOverride,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// WithSequence returns a copy of the event carrying the ledger-assigned sequence.
func (e *Event) WithSequence(sequence int64) (*Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if sequence < 1 {
		return nil, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}

	sequenced := *e
	sequenced.sequence = sequence
	return &sequenced, nil
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) ID() kernel.UUID { return e.id }
func (e *Event) ShipmentID() kernel.UUID { return e.shipmentID }
func (e *Event) Sequence() int64 { return e.sequence }
func (e *Event) Status() Status { return e.status }
func (e *Event) Description() *string { return e.description }
func (e *Event) Location() *string { return e.location }
func (e *Event) ActorID() kernel.UUID { return e.actorID }
func (e *Event) ActorRole() actor.Role { return e.actorRole }
func (e *Event) IsOverride() bool { return e.isOverride }
func (e *Event) CreatedAt() time.Time { return e.createdAt }

// CollectEvents drains a ledger sequence, stopping at the first error.
func CollectEvents(events iter.Seq2[*Event, error]) ([]*Event, error) {
	collected := make([]*Event, 0)
	for event, err := range events {
		if err != nil {
			return nil, err
		}
		collected = append(collected, event)
	}
	return collected, nil
}

func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
