package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

func NewWriter(brokerURL, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokerURL),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
}

// PublishEnvelope serializes an event envelope and writes it keyed by
// hostname, so one hostname's events stay ordered within a partition.
func PublishEnvelope(ctx context.Context, writer *kafka.Writer, env Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	err = writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(env.Hostname),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write envelope: %w", err)
	}
	return nil
}
