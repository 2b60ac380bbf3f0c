package commands

import (
	"context"
	"time"

	"shipping/internal/core/ports"
)

// RelayOutboxResult counts the messages handled by one relay run.
type RelayOutboxResult struct {
	Published int
	Failed    int
	// Deferred messages share a key with a failed one and wait for the next run.
	Deferred int
}

// RelayOutboxCommandHandler moves pending outbox messages to the broker.
// Messages stay locked by the surrounding transaction while they are
// published, so concurrent relays never pick the same batch. A failed publish
// is recorded on the message and retried on the next run; delivery is
// at-least-once. Once a key fails, later messages with that key wait so a
// shipment's events reach the broker in order.
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // the batch could not be read or committed
//	}
//	// result.Failed and result.Deferred messages go out on a later run
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
	now        func() time.Time
}

// NewRelayOutboxCommandHandler creates a relay publishing through publisher.
func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.MessagePublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (h RelayOutboxCommandHandler) Handle(ctx context.Context, command RelayOutboxCommand) (RelayOutboxResult, error) {
	if err := command.Validate(); err != nil {
		return RelayOutboxResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RelayOutboxResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	messages, err := outboxRepo.GetPending(ctx, command.BatchSize())
	if err != nil {
		return RelayOutboxResult{}, err
	}

	var result RelayOutboxResult
	failedKeys := make(map[string]struct{})
	for _, message := range messages {
		if _, blocked := failedKeys[message.Key()]; blocked {
			result.Deferred++
			continue
		}

		if publishErr := h.publisher.Publish(ctx, message); publishErr != nil {
			message.MarkFailed(publishErr)
			failedKeys[message.Key()] = struct{}{}
			result.Failed++
		} else {
			message.MarkPublished(h.now())
			result.Published++
		}

		if err = outboxRepo.Update(ctx, message); err != nil {
			return RelayOutboxResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RelayOutboxResult{}, err
	}

	return result, nil
}
