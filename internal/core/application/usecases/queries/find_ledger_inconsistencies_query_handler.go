package queries

import (
	"context"
	"time"

	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindLedgerInconsistenciesQueryHandler audits the shipments table against
// the event ledger. A shipment with no events must be PENDING.
type FindLedgerInconsistenciesQueryHandler struct {
	db           *gorm.DB
	storeTimeout time.Duration
}

func NewFindLedgerInconsistenciesQueryHandler(
	db *gorm.DB,
	storeTimeout time.Duration,
) FindLedgerInconsistenciesQueryHandler {
	return FindLedgerInconsistenciesQueryHandler{db: db, storeTimeout: storeTimeout}
}

const auditOperation = "find ledger inconsistencies"

func (h FindLedgerInconsistenciesQueryHandler) Handle(
	ctx context.Context,
	query FindLedgerInconsistenciesQuery,
) ([]LedgerInconsistency, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, h.storeTimeout)
	defer cancel()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.tracking_code,
			s.status,
			latest.status,
			stats.event_count,
			stats.max_sequence
		FROM shipments s
		LEFT JOIN LATERAL (
			SELECT e.status
			FROM shipment_events e
			WHERE e.shipment_id = s.id
			ORDER BY e.sequence DESC
			LIMIT 1
		) latest ON TRUE
		CROSS JOIN LATERAL (
			SELECT
				COUNT(*) AS event_count,
				COALESCE(MAX(e.sequence), 0) AS max_sequence
			FROM shipment_events e
			WHERE e.shipment_id = s.id
		) stats
		WHERE (latest.status IS NULL AND s.status <> 'PENDING')
			OR (latest.status IS NOT NULL AND latest.status <> s.status)
			OR stats.event_count <> stats.max_sequence
		ORDER BY s.created_at
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, pgerr.Classify(err, auditOperation, "shipment", nil)
	}
	defer rows.Close()

	found := make([]LedgerInconsistency, 0)
	for rows.Next() {
		var (
			item LedgerInconsistency
			id   uuid.UUID
		)

		if err = rows.Scan(
			&id,
			&item.TrackingCode,
			&item.StoredStatus,
			&item.LatestEventStatus,
			&item.EventCount,
			&item.MaxSequence,
		); err != nil {
			return nil, pgerr.Classify(err, auditOperation, "shipment", nil)
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ShipmentID = shipmentID
		found = append(found, item)
	}

	if err = rows.Err(); err != nil {
		return nil, pgerr.Classify(err, auditOperation, "shipment", nil)
	}

	return found, nil
}
