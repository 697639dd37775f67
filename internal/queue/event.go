// Package queue defines the sale notifications exchanged over the message
// broker and the consumer that turns them into the sales log.
package queue

import "github.com/shopspring/decimal"

// SalesQueueName is the durable queue carrying TicketSoldEvent messages.
const SalesQueueName = "ticket.sold"

// TicketSoldEvent is published after a purchase has been committed. It
// carries enough for downstream consumers to log or notify without reading
// the ledger's store.
type TicketSoldEvent struct {
	EventID       string          `json:"event_id"`
	Username      string          `json:"username"`
	TicketType    string          `json:"ticket_type"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Receipt       string          `json:"receipt"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	SoldAt        string          `json:"sold_at"`
}
