package model

import (
	"iter"
	"math"
)

// Default identity of the system-owned admin account.
const (
	AdminUsername = "admin"
	AdminEmail    = "admin@example.com"
)

// SaleCount is the cumulative quantity sold for one ticket type.
type SaleCount struct {
	TicketType string
	Quantity   int
}

// SalesLedger tallies quantities sold per ticket type. Entries keep the
// order in which each ticket type was first sold. Counters only grow
// through RecordSale.
type SalesLedger struct {
	Entries []SaleCount
	index   map[string]int // TicketType -> position in Entries, rebuilt lazily
}

func (l *SalesLedger) lookup(ticketType string) (int, bool) {
	if l.index == nil || len(l.index) != len(l.Entries) {
		l.index = make(map[string]int, len(l.Entries))
		for i, e := range l.Entries {
			if _, seen := l.index[e.TicketType]; !seen {
				l.index[e.TicketType] = i
			}
		}
	}
	i, ok := l.index[ticketType]
	return i, ok
}

// RecordSale adds quantity to the counter for ticketType, creating the
// entry when the type has not been sold before.
func (l *SalesLedger) RecordSale(ticketType string, quantity int) {
	if i, ok := l.lookup(ticketType); ok {
		l.Entries[i].Quantity += quantity
		return
	}
	l.Entries = append(l.Entries, SaleCount{TicketType: ticketType, Quantity: quantity})
	l.index[ticketType] = len(l.Entries) - 1
}

// CanRecord reports whether quantity more tickets of ticketType fit in the
// counter without overflowing it.
func (l *SalesLedger) CanRecord(ticketType string, quantity int) bool {
	return quantity >= 0 && l.Quantity(ticketType) <= math.MaxInt-quantity
}

// RevertSale subtracts a previously recorded sale. An entry that drops back
// to zero and was the last one added is removed, restoring the ledger to
// the exact state it had before the matching RecordSale.
func (l *SalesLedger) RevertSale(ticketType string, quantity int) {
	i, ok := l.lookup(ticketType)
	if !ok {
		return
	}
	l.Entries[i].Quantity -= quantity
	if l.Entries[i].Quantity <= 0 && i == len(l.Entries)-1 {
		l.Entries = l.Entries[:i]
		delete(l.index, ticketType)
	}
}

// Quantity returns the cumulative quantity sold for ticketType.
func (l *SalesLedger) Quantity(ticketType string) int {
	if i, ok := l.lookup(ticketType); ok {
		return l.Entries[i].Quantity
	}
	return 0
}

// Len reports how many ticket types have been sold.
func (l *SalesLedger) Len() int { return len(l.Entries) }

// Report yields (ticket type, cumulative quantity) pairs in first-seen
// order. The sequence can be ranged over any number of times.
func (l *SalesLedger) Report() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, e := range l.Entries {
			if !yield(e.TicketType, e.Quantity) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the ledger.
func (l *SalesLedger) Clone() SalesLedger {
	out := SalesLedger{Entries: make([]SaleCount, len(l.Entries))}
	copy(out.Entries, l.Entries)
	return out
}

// AdminAccount is the single system-owned administrator. It is not part of
// the customer directory; it holds a customer-shaped profile next to the
// sales ledger.
type AdminAccount struct {
	Profile Customer
	Sales   SalesLedger
}

// NewAdminAccount returns the default admin with an empty ledger.
func NewAdminAccount() AdminAccount {
	return AdminAccount{Profile: Customer{Username: AdminUsername, Email: AdminEmail}}
}

// RecordSale forwards to the account's ledger.
func (a *AdminAccount) RecordSale(ticketType string, quantity int) {
	a.Sales.RecordSale(ticketType, quantity)
}

// Clone returns a deep copy of the account.
func (a *AdminAccount) Clone() AdminAccount {
	return AdminAccount{Profile: a.Profile.Clone(), Sales: a.Sales.Clone()}
}
