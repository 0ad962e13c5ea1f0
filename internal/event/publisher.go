package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lshigami/surveyhub/config"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// Publisher emits domain events after the corresponding transaction commits.
// Publishing failures never fail the request that produced the event.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

type EventPublisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	enabled      bool
}

// NewEventPublisher connects to RabbitMQ, or returns a disabled publisher
// when no URI is configured.
func NewEventPublisher(uri, exchange string) (*EventPublisher, error) {
	if uri == "" {
		log.Warn().Msg("RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{enabled: false}, nil
	}

	conn, err := amqp091.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info().Str("exchange", exchange).Msg("RabbitMQ event publisher ready")
	return &EventPublisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchange,
		enabled:      true,
	}, nil
}

// NewPublisher is the fx provider; it closes the connection on stop.
func NewPublisher(lc fx.Lifecycle, cfg *config.Config) (Publisher, error) {
	p, err := NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return p.Close()
		},
	})
	return p, nil
}

// Disabled returns a publisher that drops every event.
func Disabled() Publisher {
	return &EventPublisher{enabled: false}
}

func (p *EventPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	if !p.enabled {
		log.Debug().Str("routingKey", routingKey).Msg("Event publishing is disabled, skipping event")
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		pubCtx,
		p.exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	log.Debug().Str("routingKey", routingKey).Msg("Event published")
	return nil
}

func (p *EventPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
