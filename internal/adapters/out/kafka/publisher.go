// Package kafka relays outbox messages to Kafka.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/outbox"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers []string
	// Topic is the fallback for messages that carry none.
	Topic string
}

// Publisher implements ports.MessagePublisher. Messages are hashed by key so
// the events of one shipment stay ordered within a partition.
type Publisher struct {
	writer messageWriter
	topic  string
}

func NewPublisher(cfg Config) (*Publisher, error) {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, b := range cfg.Brokers {
		if trimmed := strings.TrimSpace(b); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers required")
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newPublisher(w, cfg.Topic), nil
}

func newPublisher(w messageWriter, topic string) *Publisher {
	return &Publisher{writer: w, topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	records := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}

		topic := m.Topic()
		if topic == "" {
			topic = p.topic
		}
		records = append(records, kafka.Message{
			Topic: topic,
			Key:   []byte(m.Key()),
			Value: m.Payload(),
			Time:  m.CreatedAt(),
			Headers: []kafka.Header{
				{Key: "message-id", Value: []byte(m.ID().String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("publish %d message(s): %w", len(records), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
