package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/shekhakhaled/adventureland-tickets/internal/utils"
)

const salesLogFile = "sales.log"

// SalesConsumer appends every TicketSoldEvent to <LogDir>/sales.log.
type SalesConsumer struct {
	URL    string // AMQP broker URL
	LogDir string // directory holding sales.log
}

// Run connects to the broker, declares the ticket.sold queue (durable) and
// consumes until ctx is cancelled. Broker failures trigger a reconnect with
// exponential backoff capped at 30s. A message that cannot be handled is
// rejected without requeue so a bad payload cannot loop forever.
func (c SalesConsumer) Run(ctx context.Context) error {
	log := logrus.WithField("component", "sales-consumer")
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			log.WithError(err).Warnf("failed to dial broker; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).Warn("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c SalesConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logrus.WithError(err).Warn("sales-consumer: set QoS failed")
	}

	if _, err := ch.QueueDeclare(SalesQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, SalesQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.HandleMessage(d.Body); err != nil {
			logrus.WithError(err).Error("sales-consumer: handle message failed")
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one event and appends its line to the sales log.
func (c SalesConsumer) HandleMessage(body []byte) error {
	var ev TicketSoldEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Username == "" || ev.TicketType == "" || ev.Quantity <= 0 {
		return fmt.Errorf("incomplete event %q", ev.EventID)
	}
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.LogDir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.LogDir, salesLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] Ticket sold | receipt=%s | user=%s | ticket=%q | quantity=%d | total=%s | payment=%q\n",
		ev.SoldAt, ev.Receipt, ev.Username, ev.TicketType, ev.Quantity, utils.FormatPrice(ev.TotalPrice), ev.PaymentMethod)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
