package outboxrepo

import (
	"context"

	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/core/domain/model/outbox"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates an outbox repository on db.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add enqueues message for the relay in the current transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err, "add outbox message", "outbox message", message.ID().String())
	}
	return nil
}

// GetPending locks the returned rows FOR UPDATE SKIP LOCKED, so a second
// relay running at the same time picks a disjoint batch.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Classify(err, "get pending outbox messages", "outbox message", nil)
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// Update writes the publish state only; topic, key and payload are immutable.
func (r *GormOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"published_at": dto.PublishedAt,
			"attempts":     dto.Attempts,
			"last_error":   dto.LastError,
		})
	if result.Error != nil {
		return pgerr.Classify(result.Error, "update outbox message", "outbox message", message.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", message.ID().String())
	}
	return nil
}
