package infra

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=kafka.go -destination=mock_kafka.go -package=infra

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter keys messages by hash so every heartbeat of one instance lands on the
// same partition and is consumed in order.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

func NewKafkaReader(brokers []string, consumerGroupID string, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     consumerGroupID,
		Topic:       topic,
		StartOffset: kafka.LastOffset,
	})
}
