package ports

import (
	"context"

	"shipping/internal/core/domain/model/outbox"
)

// OutboxRepository stores broker messages awaiting relay.
type OutboxRepository interface {
	Add(ctx context.Context, message *outbox.Message) error

	// GetPending returns up to limit unpublished messages, oldest first.
	// Inside a transaction the rows stay locked until commit, so concurrent
	// relays skip them.
	GetPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	// Update persists the publish state of a message.
	Update(ctx context.Context, message *outbox.Message) error
}

// MessagePublisher delivers outbox messages to the message broker.
type MessagePublisher interface {
	Publish(ctx context.Context, messages ...*outbox.Message) error
}
