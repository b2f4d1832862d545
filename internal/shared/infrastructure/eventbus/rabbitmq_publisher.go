package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the topic exchange tempo publishes to.
const DefaultExchange = "tempo.events"

var errNotConfirmed = errors.New("broker rejected message")

// RabbitMQConfig locates the broker.
type RabbitMQConfig struct {
	URL      string
	Exchange string // defaults to DefaultExchange
}

// RabbitMQPublisher publishes envelopes to a durable topic exchange in
// confirm mode. Publish returns once the broker has acknowledged the message.
type RabbitMQPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger
}

// NewRabbitMQPublisher dials the broker, declares the exchange and enables
// publisher confirms.
func NewRabbitMQPublisher(cfg RabbitMQConfig, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := openChannel(conn, cfg.Exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Debug("rabbitmq publisher ready", "exchange", cfg.Exchange)
	return &RabbitMQPublisher{
		conn:     conn,
		ch:       ch,
		exchange: cfg.Exchange,
		logger:   logger.With("component", "rabbitmq"),
	}, nil
}

func openChannel(conn *amqp.Connection, exchange string) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	return ch, nil
}

// Publish sends payload under routingKey and waits for the broker's confirm.
func (p *RabbitMQPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := publishing(payload)
	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("confirm %s: %w", routingKey, err)
	}
	if !acked {
		return fmt.Errorf("publish %s: %w", routingKey, errNotConfirmed)
	}

	p.logger.DebugContext(ctx, "published", "routing_key", routingKey, "message_id", msg.MessageId)
	return nil
}

// Check fails once the connection or channel has closed.
func (p *RabbitMQPublisher) Check(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() || p.ch.IsClosed() {
		return errors.New("rabbitmq connection closed")
	}
	return nil
}

// Close closes the channel and the connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.ch.Close(), p.conn.Close())
}

// publishing builds the AMQP message. Ids from the envelope become message
// properties so consumers can deduplicate and trace without parsing the body.
func publishing(payload []byte) amqp.Publishing {
	var head struct {
		EventID       string `json:"event_id"`
		AggregateType string `json:"aggregate_type"`
		Trace         Trace  `json:"metadata"`
	}
	_ = json.Unmarshal(payload, &head)

	return amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		AppId:         "tempo",
		MessageId:     head.EventID,
		CorrelationId: head.Trace.CorrelationID,
		Type:          head.AggregateType,
		Timestamp:     time.Now().UTC(),
		Body:          payload,
	}
}
