package storage

import (
	"context"
	"encoding/json"

	"food-catalog/catalog-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher sends lifecycle events keyed by restaurant code so events
// of one restaurant stay ordered within a partition.
type KafkaPublisher struct {
	Writer messageWriter
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishLifecycle(ctx context.Context, events ...domain.LifecycleEvent) error {
	if len(events) == 0 {
		return nil
	}
	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(event.Code),
			Value: payload,
		})
	}
	return p.Writer.WriteMessages(ctx, messages...)
}
