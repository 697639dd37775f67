package model

import "github.com/shopspring/decimal"

// Payment methods offered at the counter. The ledger records the method a
// customer names but never charges it, so other labels are stored as given.
const (
	PaymentCreditCard    = "Credit Card"
	PaymentDigitalWallet = "Digital Wallet"
)

// PurchaseRecord is one entry in a customer's purchase history. Records are
// appended once and never changed afterwards.
type PurchaseRecord struct {
	TicketType    string          // type name of the ticket bought
	Quantity      int             // number of tickets, always positive
	TotalPrice    decimal.Decimal // price after discount
	Receipt       string          // short receipt code; empty for records written before receipts existed
	PaymentMethod string          // method named at purchase time; empty for older records
}

// Customer is a registered park visitor. Customers are created only through
// registration and are never deleted.
type Customer struct {
	Username string
	Email    string
	History  []PurchaseRecord
}

// AddPurchase appends a record to the customer's history.
func (c *Customer) AddPurchase(rec PurchaseRecord) {
	c.History = append(c.History, rec)
}

// PurchaseHistory returns a copy of the history in purchase order.
func (c *Customer) PurchaseHistory() []PurchaseRecord {
	out := make([]PurchaseRecord, len(c.History))
	copy(out, c.History)
	return out
}

// RevertPurchase removes the newest record. It backs the rollback path of a
// purchase whose write-through failed.
func (c *Customer) RevertPurchase() {
	if n := len(c.History); n > 0 {
		c.History = c.History[:n-1]
	}
}

// Clone returns a deep copy of the customer.
func (c Customer) Clone() Customer {
	c.History = c.PurchaseHistory()
	return c
}
