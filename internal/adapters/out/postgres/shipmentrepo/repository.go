package shipmentrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	now     func() time.Time
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a shipment repository that reports every
// loaded or saved aggregate to tracker.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
		now:     time.Now,
	}
}

// Add inserts the shipment and its items.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, aggregate.CreatedAt())
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err, "add shipment", "shipment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update is a compare-and-swap on (status, version). Only the mutable
// columns are written; items and addresses never change after booking.
func (r *GormShipmentRepository) Update(
	ctx context.Context,
	aggregate *shipment.Shipment,
	expected shipment.Revision,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Version() != expected.Version+1 {
		return errs.NewVersionIsInvalidError("version",
			fmt.Errorf("expected %d, got %d", expected.Version+1, aggregate.Version()))
	}

	dto := fromDomain(aggregate, r.now())
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ? AND status = ? AND version = ?", dto.ID, expected.Status.String(), expected.Version).
		Updates(map[string]any{
			"status":              dto.Status,
			"pickup_date":         dto.PickupDate,
			"pickup_time_slot":    dto.PickupTimeSlot,
			"assigned_partner_id": dto.AssignedPartnerID,
			"version":             dto.Version,
			"updated_at":          dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Classify(result.Error, "update shipment", "shipment", aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return r.missedSwap(ctx, aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// missedSwap tells a lost race apart from a missing row.
func (r *GormShipmentRepository) missedSwap(ctx context.Context, id kernel.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error
	if err != nil {
		return pgerr.Classify(err, "update shipment", "shipment", id.String())
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}
	return errs.NewConflictError("shipment", id.String())
}

// Get loads a shipment with its items by ID.
//
// Example:
//
//	s, err := repo.Get(ctx, id)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return nil, err // unknown shipment
//	}
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("shipment", id.String())
	}
	if err != nil {
		return nil, pgerr.Classify(err, "get shipment", "shipment", id.String())
	}

	return toDomain(dto)
}

// GetByTrackingCode loads a shipment by its public tracking code.
func (r *GormShipmentRepository) GetByTrackingCode(
	ctx context.Context,
	code kernel.TrackingCode,
) (*shipment.Shipment, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.withItems(ctx).First(&dto, "tracking_code = ?", code.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("tracking_code", code.String())
	}
	if err != nil {
		return nil, pgerr.Classify(err, "get shipment by tracking code", "shipment", code.String())
	}

	return toDomain(dto)
}

func (r *GormShipmentRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
