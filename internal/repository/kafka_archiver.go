package repository

import (
	"context"
	"fmt"

	"ChipTick/internal/domain/models"
	"ChipTick/pkg/kafka"
)

// tickEvent is the wire shape of an archived daily point.
type tickEvent struct {
	Symbol string `json:"symbol"`
	Date   string `json:"date"`
	Price  int64  `json:"price"`
}

// KafkaTickArchiver publishes appended daily points to a Kafka topic.
// Keyed by symbol so all points of one item stay on one partition.
type KafkaTickArchiver struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaTickArchiver(producer *kafka.Producer, topic string) *KafkaTickArchiver {
	return &KafkaTickArchiver{producer: producer, topic: topic}
}

func (a *KafkaTickArchiver) Archive(ctx context.Context, symbol string, p models.PricePoint) error {
	evt := tickEvent{Symbol: symbol, Date: p.Date, Price: p.Price}
	if err := a.producer.Publish(ctx, a.topic, []byte(symbol), evt); err != nil {
		return fmt.Errorf("archive tick to kafka: %w", err)
	}
	return nil
}

func (a *KafkaTickArchiver) Close() error {
	return a.producer.Close()
}
