package producers

import (
	"context"
	"io"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher writes value as JSON under key. Publish returns once the
// broker acknowledged the write.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	io.Closer
}

// DeadLetterPublisher parks a raw message together with the reason it was
// given up on
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	io.Closer
}

// KafkaWriter is the part of *kafka.Writer the producers use
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	io.Closer
}

var (
	_ KafkaWriter         = (*kafka.Writer)(nil)
	_ MessagePublisher    = (*EntryImportProducer)(nil)
	_ DeadLetterPublisher = (*DLQProducer)(nil)
)
