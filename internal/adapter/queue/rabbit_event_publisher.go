package queue

import (
	"context"
	"fmt"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitEventPublisher forwards calculation events to a durable topic
// exchange, routing key = event name (shipping.rule_applied,
// shipping.calculation_completed).
type RabbitEventPublisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewRabbitEventPublisher declares the exchange once at startup and
// enables publisher confirms.
func NewRabbitEventPublisher(ch *amqp.Channel, exchange string) (*RabbitEventPublisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return &RabbitEventPublisher{ch: ch, exchange: exchange}, nil
}

func (p *RabbitEventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	body, err := usecase.EncodeEvent(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return p.PublishRaw(ctx, event.EventName(), body)
}

// PublishRaw ships an already-encoded payload; the outbox drainer uses
// this to forward stored envelopes verbatim.
func (p *RabbitEventPublisher) PublishRaw(ctx context.Context, routingKey string, body []byte) error {
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Body:         body,
	}

	if err := p.ch.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

var _ usecase.EventSink = (*RabbitEventPublisher)(nil)
