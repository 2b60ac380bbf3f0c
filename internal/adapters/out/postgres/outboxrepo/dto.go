// Package outboxrepo stores broker messages written alongside ledger events
// and hands pending ones to the relay.
package outboxrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO is the row of the outbox_messages table.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic       string    `gorm:"size:255"`
	Key         string    `gorm:"size:255"`
	Payload     string    `gorm:"type:jsonb"`
	CreatedAt   time.Time `gorm:"index"`
	PublishedAt *time.Time
	Attempts    int
	LastError   *string
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID().Bytes(),
		Topic:       message.Topic(),
		Key:         message.Key(),
		Payload:     string(message.Payload()),
		CreatedAt:   message.CreatedAt(),
		PublishedAt: message.PublishedAt(),
		Attempts:    message.Attempts(),
		LastError:   message.LastError(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id, dto.Topic, dto.Key, []byte(dto.Payload),
		dto.CreatedAt, dto.PublishedAt, dto.Attempts, dto.LastError,
	)
}
