package infra

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"broker-1:9092", "broker-2:9092"}, "instance-heartbeats")
	defer w.Close()

	assert.Equal(t, "instance-heartbeats", w.Topic)
	assert.Contains(t, w.Addr.String(), "broker-1:9092")
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
}

func TestNewKafkaReader(t *testing.T) {
	r := NewKafkaReader([]string{"broker-1:9092"}, "health-registry", "instance-heartbeats")
	defer r.Close()

	cfg := r.Config()
	assert.Equal(t, "health-registry", cfg.GroupID)
	assert.Equal(t, "instance-heartbeats", cfg.Topic)
	assert.Equal(t, kafka.LastOffset, cfg.StartOffset)
}
