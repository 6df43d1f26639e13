package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/household-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

// EntryImportProducer publishes entry import requests to the import topic
type EntryImportProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewEntryImportProducer ensures the import topic exists and opens a writer.
// Messages are keyed by account id so imports for one account stay ordered.
func NewEntryImportProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*EntryImportProducer, error) {
	if cfg.ImportTopic == "" {
		return nil, fmt.Errorf("kafka import topic is not configured")
	}

	brokers := cfg.BrokerList()
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}

	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for entry import producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.ImportTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure import topic %s exists: %w", cfg.ImportTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        cfg.ImportTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.MaxWait,
	}

	return newEntryImportProducer(logger, writer, cfg.ImportTopic), nil
}

func newEntryImportProducer(logger *slog.Logger, writer KafkaWriter, topic string) *EntryImportProducer {
	return &EntryImportProducer{
		logger: logger,
		writer: writer,
		topic:  topic,
	}
}

// Publish writes value as JSON and blocks until the broker acknowledged it
func (p *EntryImportProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal entry import message: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish entry import message",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published entry import message",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *EntryImportProducer) Close() error {
	p.logger.Info("Closing entry import producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
