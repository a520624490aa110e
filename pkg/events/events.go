// Package events publishes reservation lifecycle events to RabbitMQ. Publishing is best effort:
// callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"periodic-tables/backend/config"
)

// Event types
const (
	TypeReservationCreated       = "reservation.created"
	TypeReservationStatusChanged = "reservation.status_changed"
	TypeReservationDeleted       = "reservation.deleted"
	TypeTableSeated              = "table.seated"
	TypeTableFinished            = "table.finished"
)

// Event one lifecycle change.
type Event struct {
	Type            string `json:"type"`
	ReservationID   int64  `json:"reservation_id"`
	TableID         int64  `json:"table_id,omitempty"`
	Status          string `json:"status,omitempty"`
	PreviousStatus  string `json:"previous_status,omitempty"`
	ReservationDate string `json:"reservation_date,omitempty"`
	OccurredAt      string `json:"occurred_at"`
}

// Publisher sends events somewhere.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// NewPublisher returns an AMQP publisher when events are enabled, otherwise a no-op one.
func NewPublisher(cfg *config.EventsConfig, logger *zap.Logger) (Publisher, error) {
	if !cfg.Enabled {
		return NopPublisher{}, nil
	}
	return NewAMQPPublisher(cfg.URL, cfg.Queue, logger)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// AMQPPublisher publishes persistent JSON messages to one durable queue on the default exchange.
// A closed connection or channel is redialed on the next Publish.
type AMQPPublisher struct {
	mu     sync.Mutex // amqp channels are not safe for concurrent publishing
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	dial   func() (*amqp.Connection, *amqp.Channel, error)
	logger *zap.Logger
}

// NewAMQPPublisher dials the broker and declares the queue.
func NewAMQPPublisher(url, queue string, logger *zap.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		queue:  queue,
		dial:   func() (*amqp.Connection, *amqp.Channel, error) { return dialQueue(url, queue) },
		logger: logger,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}

	logger.Info("rabbitmq publisher ready", zap.String("queue", queue))
	return p, nil
}

func dialQueue(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	return conn, ch, nil
}

// connect replaces the connection and channel. Callers hold mu, except the constructor.
func (p *AMQPPublisher) connect() error {
	conn, ch, err := p.dial()
	if err != nil {
		return err
	}
	p.conn, p.ch = conn, ch
	return nil
}

// healthy reports whether the current channel can publish. Callers hold mu.
func (p *AMQPPublisher) healthy() bool {
	return p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed()
}

// Publish sends evt as a persistent message.
func (p *AMQPPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := Encode(evt)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.healthy() {
		p.release()
		if err := p.connect(); err != nil {
			return fmt.Errorf("rabbitmq reconnect: %w", err)
		}
		p.logger.Info("rabbitmq publisher reconnected", zap.String("queue", p.queue))
	}

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         evt.Type,
			Body:         body,
		},
	)
	if errors.Is(err, amqp.ErrClosed) {
		p.release()
	}
	return err
}

// release drops a broken connection so the next Publish redials. Callers hold mu.
func (p *AMQPPublisher) release() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	if err := p.ch.Close(); err != nil {
		p.logger.Warn("rabbitmq channel close", zap.Error(err))
	}
	err := p.conn.Close()
	p.conn, p.ch = nil, nil
	return err
}

// Encode stamps OccurredAt when missing and marshals evt.
func Encode(evt Event) ([]byte, error) {
	if evt.OccurredAt == "" {
		evt.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return body, nil
}
