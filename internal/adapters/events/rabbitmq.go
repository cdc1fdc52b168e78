package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/weblinkcreator/siteapi/internal/infrastructure/config"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/logger"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// RabbitMQPublisher sends events to a durable queue
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *logger.Logger
}

// NewRabbitMQPublisher connects, retrying while the broker comes up, and declares the queue
func NewRabbitMQPublisher(ctx context.Context, cfg config.EventsConfig, log *logger.Logger) (*RabbitMQPublisher, error) {
	log = log.WithComponent("events")

	attempts := cfg.ConnectRetries
	if attempts < 1 {
		attempts = 1
	}

	var (
		conn *amqp.Connection
		err  error
	)
	for i := 1; i <= attempts; i++ {
		conn, err = amqp.Dial(cfg.AMQPURL)
		if err == nil {
			break
		}
		log.Warnw("Failed to connect to RabbitMQ", "attempt", i, "max_attempts", attempts, "error", err)

		if i < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(cfg.RetryDelay):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}

	log.Infow("Connected to RabbitMQ", "queue", cfg.Queue)

	return &RabbitMQPublisher{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		logger:  log,
	}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event ports.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			MessageId:    event.ID,
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debugw("Published event", "event_id", event.ID, "type", event.Type, "queue", p.queue)
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
