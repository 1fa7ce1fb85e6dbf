package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aputours/backend/internal/config"
	"github.com/segmentio/kafka-go"
)

// ReceiptEventProducer publishes receipt-issued events for the notifier.
// Writes are asynchronous: notification delivery is best-effort and must not
// slow down receipt issuance.
type ReceiptEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewReceiptEventProducer creates the producer and ensures the topic exists
func NewReceiptEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*ReceiptEventProducer, error) {
	if cfg.ReceiptTopic == "" {
		return nil, fmt.Errorf("kafka receipt topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for receipt event producer: %w", err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, cfg.ReceiptTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure receipt topic %s exists: %w", cfg.ReceiptTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.ReceiptTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.ReceiptTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.ReceiptTopic, "count", len(messages))
			}
		},
	}

	return &ReceiptEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.ReceiptTopic,
	}, nil
}

// Publish marshals the value as JSON and writes it keyed by the receipt id
func (p *ReceiptEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish receipt event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish receipt event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published receipt event", "topic", p.topic, "key", key)
	return nil
}

// Close shuts down the writer
func (p *ReceiptEventProducer) Close() error {
	p.logger.Info("Closing receipt event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
