// Package kafka publishes chat events to a Kafka topic keyed by receiver so
// every recipient's events stay ordered within a partition.
package kafka

import (
	"artisan/pkg/broadcast"
	"context"
	"fmt"
	"time"

	"github.com/go-faster/jx"
	"github.com/segmentio/kafka-go"
)

// Writer is the subset of *kafka.Writer used by Publisher.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements broadcast.Publisher on top of a Kafka writer.
type Publisher struct {
	writer Writer
}

var _ broadcast.Publisher = (*Publisher)(nil)

// New returns a Publisher writing synchronously to topic on brokers.
func New(brokers []string, topic string) *Publisher {
	return NewWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
	})
}

// NewWithWriter wraps an existing writer.
func NewWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

func (p *Publisher) Publish(ctx context.Context, event broadcast.Event) error {
	var enc jx.Encoder
	event.Encode(&enc)

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ReceiverID),
		Value: enc.Bytes(),
		Time:  event.CreatedAt,
	}); err != nil {
		return fmt.Errorf("could not publish chat event: %w", err)
	}

	return nil
}

func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("could not close kafka writer: %w", err)
	}

	return nil
}
