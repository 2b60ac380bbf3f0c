// Package outbox models messages written in the same transaction as the state
// change they announce, and relayed to the message broker afterwards.
package outbox

import (
	"errors"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")

// Message is a pending or published broker record. Key orders messages of the
// same shipment within a partition.
type Message struct {
	id          kernel.UUID
	topic       string
	key         string
	payload     []byte
	createdAt   time.Time
	publishedAt *time.Time
	attempts    int
	lastError   *string

	isConstructed bool
}

func NewMessage(topic, key string, payload []byte, createdAt time.Time) (*Message, error) {
	if err := errors.Join(
		requiredString("topic", topic),
		requiredString("key", key),
		requiredPayload(payload),
	); err != nil {
		return nil, err
	}

	return &Message{
		id:            kernel.NewUUID(),
		topic:         topic,
		key:           key,
		payload:       append([]byte(nil), payload...),
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func RestoreMessage(
	id kernel.UUID,
	topic, key string,
	payload []byte,
	createdAt time.Time,
	publishedAt *time.Time,
	attempts int,
	lastError *string,
) (*Message, error) {
	if err := errors.Join(id.Validate(), requiredString("topic", topic), requiredString("key", key)); err != nil {
		return nil, err
	}

	return &Message{
		id:            id,
		topic:         topic,
		key:           key,
		payload:       payload,
		createdAt:     createdAt.UTC(),
		publishedAt:   publishedAt,
		attempts:      attempts,
		lastError:     lastError,
		isConstructed: true,
	}, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID { return m.id }
func (m *Message) Topic() string { return m.topic }
func (m *Message) Key() string { return m.key }
func (m *Message) Payload() []byte { return m.payload }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
func (m *Message) PublishedAt() *time.Time { return m.publishedAt }
func (m *Message) Attempts() int { return m.attempts }
func (m *Message) LastError() *string { return m.lastError }

func (m *Message) IsPublished() bool {
	return m.publishedAt != nil
}

// MarkPublished records a successful relay. It is a no-op for an already
// published message.
func (m *Message) MarkPublished(at time.Time) {
	if m.publishedAt != nil {
		return
	}
	published := at.UTC()
	m.publishedAt = &published
	m.attempts++
	m.lastError = nil
}

// MarkFailed records a failed relay attempt; the message stays pending.
func (m *Message) MarkFailed(cause error) {
	m.attempts++
	if cause != nil {
		msg := cause.Error()
		m.lastError = &msg
	}
}

func requiredString(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func requiredPayload(payload []byte) error {
	if len(payload) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}
	return nil
}
