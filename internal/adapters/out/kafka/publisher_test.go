package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"shipping/internal/core/domain/model/outbox"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newMessage(t *testing.T, key string) *outbox.Message {
	t.Helper()

	m, err := outbox.NewMessage("shipment.status-changed", key, []byte(`{"status":"PICKED_UP"}`),
		time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return m
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "fallback")
	first := newMessage(t, "shipment-1")
	second := newMessage(t, "shipment-2")

	require.NoError(t, p.Publish(context.Background(), first, second))

	require.Len(t, w.written, 2)
	assert.Equal(t, "shipment.status-changed", w.written[0].Topic)
	assert.Equal(t, []byte("shipment-1"), w.written[0].Key)
	assert.JSONEq(t, `{"status":"PICKED_UP"}`, string(w.written[0].Value))
	assert.Equal(t, first.CreatedAt(), w.written[0].Time)
	require.Len(t, w.written[0].Headers, 1)
	assert.Equal(t, first.ID().String(), string(w.written[0].Headers[0].Value))
	assert.Equal(t, []byte("shipment-2"), w.written[1].Key)
}

func TestPublisher_Publish_NothingToSend(t *testing.T) {
	w := &fakeWriter{err: errors.New("must not be called")}

	require.NoError(t, newPublisher(w, "t").Publish(context.Background()))
}

func TestPublisher_Publish_WriterFails(t *testing.T) {
	brokerErr := errors.New("leader not available")
	w := &fakeWriter{err: brokerErr}

	err := newPublisher(w, "t").Publish(context.Background(), newMessage(t, "k"))
	require.ErrorIs(t, err, brokerErr)
}

func TestPublisher_Publish_RejectsUnconstructedMessage(t *testing.T) {
	w := &fakeWriter{}

	err := newPublisher(w, "t").Publish(context.Background(), &outbox.Message{})
	require.ErrorIs(t, err, outbox.ErrMessageIsNotConstructed)
	assert.Empty(t, w.written)
}

func TestNewPublisher_RequiresBrokers(t *testing.T) {
	_, err := NewPublisher(Config{Brokers: []string{" ", ""}, Topic: "t"})
	require.Error(t, err)

	p, err := NewPublisher(Config{Brokers: []string{"localhost:9092"}, Topic: "t"})
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}

	require.NoError(t, newPublisher(w, "t").Close())
	assert.True(t, w.closed)
}
