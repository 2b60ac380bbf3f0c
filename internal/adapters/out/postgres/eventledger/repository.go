package eventledger

import (
	"context"
	"errors"
	"iter"

	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GormEventLedger implements ports.EventLedger using GORM.
//
// Append computes the next sequence with MAX(sequence)+1. It must run in the
// same transaction as the shipment compare-and-swap, whose row lock
// serializes appends per shipment; the unique (shipment_id, sequence) index
// turns any remaining race into a conflict.
type GormEventLedger struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEventLedger creates a ledger bound to db, which is the transaction
// when used inside a unit of work.
func NewGormEventLedger(db *gorm.DB, tracker aggregateTracker) *GormEventLedger {
	return &GormEventLedger{db: db, tracker: tracker}
}

// Append stores event as the next entry for its shipment and returns the
// assigned sequence. Two writers racing for the same sequence end in a
// conflict for the later one.
//
// Example:
//
//	seq, err := uow.EventLedger().Append(ctx, event)
//	if errors.Is(err, errs.ErrConflict) {
//	    return err // another transition won; reload and retry
//	}
//	// seq is 1 for the first event of a shipment
func (l *GormEventLedger) Append(ctx context.Context, event *shipment.Event) (int64, error) {
	if err := event.Validate(); err != nil {
		return 0, err
	}

	shipmentID := event.ShipmentID()

	var next int64
	err := l.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(sequence), 0) + 1 FROM shipment_events WHERE shipment_id = ?", shipmentID.Bytes()).
		Scan(&next).Error
	if err != nil {
		return 0, pgerr.Classify(err, "append event", "shipment", shipmentID.String())
	}

	dto := fromDomain(event, next)
	if err = l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return 0, pgerr.Classify(err, "append event", "shipment", shipmentID.String())
	}

	sequenced, err := event.WithSequence(next)
	if err != nil {
		return 0, err
	}

	l.tracker.TrackAggregate(shipmentID, sequenced)
	return next, nil
}

// ListByShipment streams events by ascending sequence. Each range runs a
// fresh query. Inside a transaction the caller must finish ranging before
// issuing other statements on it.
func (l *GormEventLedger) ListByShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) iter.Seq2[*shipment.Event, error] {
	return func(yield func(*shipment.Event, error) bool) {
		if err := shipmentID.Validate(); err != nil {
			yield(nil, err)
			return
		}

		rows, err := l.db.WithContext(ctx).
			Model(&EventDTO{}).
			Where("shipment_id = ?", shipmentID.Bytes()).
			Order("sequence").
			Rows()
		if err != nil {
			yield(nil, pgerr.Classify(err, "list events", "shipment", shipmentID.String()))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var dto EventDTO
			if err = l.db.ScanRows(rows, &dto); err != nil {
				yield(nil, err)
				return
			}

			event, mapErr := toDomain(dto)
			if mapErr != nil {
				yield(nil, mapErr)
				return
			}

			if !yield(event, nil) {
				return
			}
		}

		if err = rows.Err(); err != nil {
			yield(nil, pgerr.Classify(err, "list events", "shipment", shipmentID.String()))
		}
	}
}

// Latest returns nil without error for a shipment that has no events yet.
func (l *GormEventLedger) Latest(ctx context.Context, shipmentID kernel.UUID) (*shipment.Event, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto EventDTO
	err := l.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("sequence DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil // no events means the shipment is still PENDING
	}
	if err != nil {
		return nil, pgerr.Classify(err, "latest event", "shipment", shipmentID.String())
	}

	return toDomain(dto)
}
