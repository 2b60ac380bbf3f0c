package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrFindLedgerInconsistenciesQueryIsNotConstructed = errors.New(
	"FindLedgerInconsistenciesQuery must be created via NewFindLedgerInconsistenciesQuery constructor",
)

// FindLedgerInconsistenciesQuery looks for shipments whose stored status
// disagrees with their ledger or whose event sequence has gaps.
type FindLedgerInconsistenciesQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewFindLedgerInconsistenciesQuery(limit int) (FindLedgerInconsistenciesQuery, error) {
	if limit < 1 {
		return FindLedgerInconsistenciesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	return FindLedgerInconsistenciesQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q FindLedgerInconsistenciesQuery) Validate() error {
	return q.guard.Validate(ErrFindLedgerInconsistenciesQueryIsNotConstructed)
}

func (q FindLedgerInconsistenciesQuery) Limit() int {
	return q.limit
}

// LedgerInconsistency describes one suspicious shipment. LatestEventStatus is
// nil when the shipment has no events.
type LedgerInconsistency struct {
	ShipmentID        kernel.UUID
	TrackingCode      string
	StoredStatus      string
	LatestEventStatus *string
	EventCount        int64
	MaxSequence       int64
}

// HasSequenceGap reports whether sequences are not exactly 1..EventCount.
func (i LedgerInconsistency) HasSequenceGap() bool {
	return i.EventCount != i.MaxSequence
}
