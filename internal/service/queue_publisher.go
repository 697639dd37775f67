// Package service provides outbound integrations of the ledger. Sale
// notifications are published to RabbitMQ; errors are logged and returned
// so callers can ignore them without interrupting the purchase flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/shekhakhaled/adventureland-tickets/internal/queue"
)

// defaultDialTimeout bounds the broker dial when ctx carries no deadline.
const defaultDialTimeout = 3 * time.Second

// QueuePublisher publishes TicketSoldEvent messages to the ticket.sold
// queue. Each publish dials the broker, which suits the ledger's rate of one
// sale per console command.
type QueuePublisher struct {
	URL string
}

// dial connects within the time left on ctx, so an unreachable broker
// cannot stall the caller past its deadline.
func (p *QueuePublisher) dial(ctx context.Context) (*amqp.Connection, error) {
	timeout := defaultDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}
	return amqp.DialConfig(p.URL, amqp.Config{
		Locale: "en_US",
		Dial:   amqp.DefaultDial(timeout),
	})
}

// NewQueuePublisher returns a publisher for the broker at url.
func NewQueuePublisher(url string) *QueuePublisher { return &QueuePublisher{URL: url} }

// PublishTicketSold publishes ev as a persistent JSON message. It never
// panics; any error is logged and returned.
func (p *QueuePublisher) PublishTicketSold(ctx context.Context, ev queue.TicketSoldEvent) error {
	log := logrus.WithFields(logrus.Fields{"component": "rabbitmq", "event_id": ev.EventID})

	conn, err := p.dial(ctx)
	if err != nil {
		log.WithError(err).Warn("dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.SalesQueueName, // name
		true,                 // durable
		false,                // autoDelete
		false,                // exclusive
		false,                // noWait
		nil,                  // args
	); err != nil {
		log.WithError(err).Warn("queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Warn("marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                   // default exchange
		queue.SalesQueueName, // routing key = queue name
		false,                // mandatory
		false,                // immediate
		pub,
	); err != nil {
		log.WithError(err).Warn("publish failed")
		return err
	}

	log.Debug("ticket sold event published")
	return nil
}
