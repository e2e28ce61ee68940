// Package events publishes lead status changes so downstream consumers (CRM
// sync, alerting) can follow the outreach funnel.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"outreach/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	ExchangeName     = "ex.outreach"
	RoutingKeyPrefix = "lead.status."
)

// LeadEvent is the payload published for every lead status change
type LeadEvent struct {
	LeadID     string        `json:"lead_id"`
	LeadName   string        `json:"lead_name"`
	From       models.Status `json:"from"`
	To         models.Status `json:"to"`
	Reason     string        `json:"reason"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// RoutingKey returns the topic key for the event, e.g. lead.status.hot_lead
func (e LeadEvent) RoutingKey() string {
	return RoutingKeyPrefix + string(e.To)
}

// Publisher emits lead events
type Publisher interface {
	Publish(ctx context.Context, event LeadEvent) error
	Close() error
}

// NoopPublisher drops every event; used when AMQP_URL is not set
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, LeadEvent) error { return nil }
func (NoopPublisher) Close() error                             { return nil }

// channel is the part of *amqp.Channel the publisher uses
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes lead events to a durable topic exchange
type RabbitMQPublisher struct {
	conn   *amqp.Connection
	ch     channel
	logger zerolog.Logger
}

// NewRabbitMQPublisher dials the broker and declares the outreach exchange
func NewRabbitMQPublisher(url string, logger zerolog.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := newPublisher(ch, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, logger zerolog.Logger) (*RabbitMQPublisher, error) {
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", ExchangeName, err)
	}
	return &RabbitMQPublisher{
		ch:     ch,
		logger: logger.With().Str("component", "events").Logger(),
	}, nil
}

// Publish sends one persistent JSON message routed by the new status
func (p *RabbitMQPublisher) Publish(ctx context.Context, event LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode lead event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		event.RoutingKey(),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish lead event: %w", err)
	}

	p.logger.Debug().Str("lead_id", event.LeadID).Str("routing_key", event.RoutingKey()).Msg("Lead event published")
	return nil
}

// Close releases the channel and the connection
func (p *RabbitMQPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
