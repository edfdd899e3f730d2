/**
 * @description
 * RabbitMQ event producer for subscription lifecycle events. Events are
 * published to a durable topic exchange as JSON. When RabbitMQ is not
 * configured or unreachable at startup, the service runs with the no-op
 * publisher instead of failing hard: entitlement events are best-effort.
 */
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the interface implemented by types that can publish events.
type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body any) error
	Close()
}

// NoopPublisher is used when RabbitMQ is unavailable. It logs what would
// have been published and succeeds.
type NoopPublisher struct {
	Logger *slog.Logger
}

// Publish logs the event and drops it.
func (p *NoopPublisher) Publish(ctx context.Context, exchange, routingKey string, body any) error {
	if p.Logger != nil {
		p.Logger.Debug("dropping event, no broker configured", "exchange", exchange, "routing_key", routingKey)
	}
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() {}

// EventProducer publishes events over a live AMQP connection.
type EventProducer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewEventProducer dials RabbitMQ with a bounded timeout and opens a
// channel.
func NewEventProducer(amqpURL string) (*EventProducer, error) {
	conn, err := amqp.DialConfig(amqpURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dialing rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	return &EventProducer{conn: conn, channel: ch}, nil
}

// Publish declares the durable topic exchange and sends body as JSON.
func (p *EventProducer) Publish(ctx context.Context, exchange, routingKey string, body any) error {
	if err := p.channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	); err != nil {
		// Channels die on AMQP errors; try once on a fresh one.
		ch, chErr := p.conn.Channel()
		if chErr != nil {
			return fmt.Errorf("declaring exchange %q: %w", exchange, err)
		}
		p.channel = ch
		if err := p.channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("declaring exchange %q: %w", exchange, err)
		}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshalling event body: %w", err)
	}

	return p.channel.PublishWithContext(ctx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        jsonBody,
		},
	)
}

// Close closes the channel and connection.
func (p *EventProducer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
