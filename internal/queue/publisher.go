package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher sends reservation events to RabbitMQ.  Each publish opens its
// own connection, so a broker outage never outlives a single call.
type Publisher struct {
	url    string
	logger zerolog.Logger
}

// NewPublisher returns a publisher for the broker at url.
func NewPublisher(url string, logger zerolog.Logger) *Publisher {
	return &Publisher{url: url, logger: logger}
}

// PublishReservationConfirmed publishes ev as a persistent JSON message to
// ReservationQueueName.  Errors are logged and returned so callers may
// ignore them without interrupting the request.
func (p *Publisher) PublishReservationConfirmed(ctx context.Context, ev ReservationConfirmedEvent) error {
	if err := p.publish(ctx, ev); err != nil {
		p.logger.Warn().Err(err).Str("confirmation_id", ev.ConfirmationID).Msg("publish reservation event failed")
		return err
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, ev ReservationConfirmedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(ReservationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	return ch.PublishWithContext(ctx, "", ReservationQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
