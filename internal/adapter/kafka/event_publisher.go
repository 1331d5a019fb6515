package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/usecase"
)

// EventPublisher forwards calculation events to a Kafka topic, keyed by
// order id so all events of one calculation land on one partition.
type EventPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventPublisher(producer sarama.SyncProducer, topic string) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic}
}

func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	body, err := usecase.EncodeEvent(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	key := ""
	switch e := event.(type) {
	case domain.RuleApplied:
		key = e.OrderID()
	case domain.CalculationCompleted:
		key = e.OrderID()
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(body),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("kafka send: %w", err)
	}
	return nil
}

var _ usecase.EventSink = (*EventPublisher)(nil)
