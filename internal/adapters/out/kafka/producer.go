// Package kafka publishes order change events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// ParseBrokers splits a comma separated broker list and drops blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewWriter hashes on the message key, so all events of one order land on
// the same partition and keep their relative order. Sends happen on the
// request path, so batches are flushed almost immediately.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderChangedProducer struct {
	writer MessageWriter
}

var _ ports.ChangeSink = (*OrderChangedProducer)(nil)

func NewOrderChangedProducer(writer MessageWriter) *OrderChangedProducer {
	return &OrderChangedProducer{writer: writer}
}

func (p *OrderChangedProducer) Name() string {
	return "kafka"
}

func (p *OrderChangedProducer) Send(ctx context.Context, ev order.ChangeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal order changed event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.OrderID.String()),
		Value: data,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "new_status", Value: []byte(ev.NewStatus.String())},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order changed event: %w", err)
	}
	return nil
}

func (p *OrderChangedProducer) Close() error {
	return p.writer.Close()
}
