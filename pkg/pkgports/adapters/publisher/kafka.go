package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/segmentio/kafka-go"
	"storefront/pkg/pkgports"
)

// MessageWriter is the part of *kafka.Writer the publisher needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher serializes values as JSON and writes them as kafka messages
type KafkaPublisher[ValueType any] struct {
	writer MessageWriter
}

// NewKafkaPublisher wraps a writer, usually kafka.NewWriter from pkg/kafka
func NewKafkaPublisher[ValueType any](writer MessageWriter) pkgports.Publisher[ValueType] {
	return &KafkaPublisher[ValueType]{
		writer: writer,
	}
}

// Publish writes one message synchronously, key is used for partitioning
func (k *KafkaPublisher[ValueType]) Publish(ctx context.Context, key string, value ValueType) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error while marshalling message: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: body,
	})
	if err != nil {
		return fmt.Errorf("error while writing to kafka: %w", err)
	}
	return nil
}

// Close flushes and closes the writer
func (k *KafkaPublisher[_]) Close() error {
	return k.writer.Close()
}
