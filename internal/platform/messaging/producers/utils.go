package producers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	partitionReadAttempts = 5
	partitionReadDelay    = 2 * time.Second
)

// topicAdmin is the part of *kafka.Conn used to manage topics
type topicAdmin interface {
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
	CreateTopics(topics ...kafka.TopicConfig) error
}

// createKafkaTopicIfNotExists creates the topic when no partition of it can be
// read after a few attempts
func createKafkaTopicIfNotExists(conn topicAdmin, topicName string, numPartitions int, replicationFactor int, log *slog.Logger) error {
	return ensureTopic(conn, kafka.TopicConfig{
		Topic:             topicName,
		NumPartitions:     max(numPartitions, 1),
		ReplicationFactor: max(replicationFactor, 1),
	}, partitionReadAttempts, partitionReadDelay, log)
}

func ensureTopic(conn topicAdmin, topic kafka.TopicConfig, attempts int, delay time.Duration, log *slog.Logger) error {
	var (
		partitions []kafka.Partition
		err        error
	)
	for i := 0; i < attempts; i++ {
		partitions, err = conn.ReadPartitions(topic.Topic)
		if err == nil && len(partitions) > 0 {
			log.Info("Kafka topic already exists", "topic", topic.Topic, "partitions", len(partitions))
			return nil
		}
		log.Warn("Failed to read partitions, retrying", "topic", topic.Topic, "attempt", i+1, "error", err)
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}

	log.Info("Creating Kafka topic", "topic", topic.Topic, "partitions", topic.NumPartitions, "replication_factor", topic.ReplicationFactor)
	if err := conn.CreateTopics(topic); err != nil {
		return fmt.Errorf("failed to create kafka topic %s: %w", topic.Topic, err)
	}
	return nil
}
