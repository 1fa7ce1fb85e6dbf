// Package producers holds the Kafka writers for receipt events: the primary
// receipt-issued publisher and the dead-letter publisher for messages the
// notifier cannot process.
package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher publishes receipt events to the primary topic. Values are
// marshalled as JSON and keyed by receipt id.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// DeadLetterPublisher parks unprocessable messages on the dead-letter topic,
// keeping the original payload and the failure reason together
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// KafkaWriter abstracts the underlying kafka.Writer so producers can be
// tested without a broker
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
