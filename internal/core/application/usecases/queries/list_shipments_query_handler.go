package queries

import (
	"context"
	"time"

	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListShipmentsQueryHandler pages through shipments for admins using plain
// SQL over the read side.
type ListShipmentsQueryHandler struct {
	db           *gorm.DB
	gate         ports.AuthorizationGate
	storeTimeout time.Duration
}

func NewListShipmentsQueryHandler(
	db *gorm.DB,
	gate ports.AuthorizationGate,
	storeTimeout time.Duration,
) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db, gate: gate, storeTimeout: storeTimeout}
}

type shipmentSummaryRow struct {
	ID                uuid.UUID
	TrackingCode      string
	Status            string
	OwnerID           uuid.UUID
	AssignedPartnerID *uuid.UUID
	DeliveryCity      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (h ListShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsQuery,
) (ListShipmentsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListShipmentsResponse{}, err
	}

	by, err := h.gate.Authorize(ctx, query.Credential())
	if err != nil {
		return ListShipmentsResponse{}, err
	}
	if !by.IsAdmin() {
		return ListShipmentsResponse{}, errs.NewForbiddenError("shipment listing", by.Role().String())
	}

	ctx, cancel := withStoreTimeout(ctx, h.storeTimeout)
	defer cancel()

	filtered := h.db.WithContext(ctx).Table("shipments")
	if query.Status() != nil {
		filtered = filtered.Where("status = ?", query.Status().String())
	}
	if query.PartnerID() != nil {
		filtered = filtered.Where("assigned_partner_id = ?", query.PartnerID().Bytes())
	}

	var total int64
	if err = filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListShipmentsResponse{}, pgerr.Classify(err, "list shipments", "shipment", nil)
	}

	var rows []shipmentSummaryRow
	err = filtered.Session(&gorm.Session{}).
		Select(`id, tracking_code, status, owner_id, assigned_partner_id,
			delivery_city, created_at, updated_at`).
		Order("created_at DESC, id").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Scan(&rows).Error
	if err != nil {
		return ListShipmentsResponse{}, pgerr.Classify(err, "list shipments", "shipment", nil)
	}

	response := ListShipmentsResponse{
		Shipments: make([]ShipmentSummary, 0, len(rows)),
		Total:     total,
	}
	for _, row := range rows {
		summary, mapErr := row.toSummary()
		if mapErr != nil {
			return ListShipmentsResponse{}, mapErr
		}
		response.Shipments = append(response.Shipments, summary)
	}

	return response, nil
}

func (r shipmentSummaryRow) toSummary() (ShipmentSummary, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return ShipmentSummary{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(r.OwnerID[:])
	if err != nil {
		return ShipmentSummary{}, err
	}
	status, err := shipment.ParseStatus(r.Status)
	if err != nil {
		return ShipmentSummary{}, err
	}

	summary := ShipmentSummary{
		ID:           id,
		TrackingCode: r.TrackingCode,
		Status:       status,
		OwnerID:      ownerID,
		DeliveryCity: r.DeliveryCity,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if r.AssignedPartnerID != nil {
		partnerID, partnerErr := kernel.UUIDFromBytes(r.AssignedPartnerID[:])
		if partnerErr != nil {
			return ShipmentSummary{}, partnerErr
		}
		summary.AssignedPartnerID = &partnerID
	}

	return summary, nil
}
