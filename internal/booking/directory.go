package booking

import (
	"fmt"

	"github.com/shekhakhaled/adventureland-tickets/internal/model"
)

// Directory owns every registered customer. Lookups go through a username
// index; iteration follows registration order.
type Directory struct {
	byName map[string]*model.Customer
	order  []*model.Customer
}

// NewDirectory returns a directory seeded with customers in the given order.
// Later entries with a username already present are skipped, so the first
// record wins just as it would have at registration time.
func NewDirectory(customers ...model.Customer) *Directory {
	d := &Directory{byName: make(map[string]*model.Customer, len(customers))}
	for _, c := range customers {
		if _, dup := d.byName[c.Username]; dup {
			continue
		}
		rec := c.Clone()
		d.byName[rec.Username] = &rec
		d.order = append(d.order, &rec)
	}
	return d
}

// Register creates a customer with an empty purchase history. It returns
// ErrAlreadyExists, leaving the directory untouched, when username is
// already registered.
func (d *Directory) Register(username, email string) (*model.Customer, error) {
	if _, ok := d.byName[username]; ok {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyExists, username)
	}
	c := &model.Customer{Username: username, Email: email}
	d.byName[username] = c
	d.order = append(d.order, c)
	return c, nil
}

// FindByUsername returns the customer registered under username.
func (d *Directory) FindByUsername(username string) (*model.Customer, bool) {
	c, ok := d.byName[username]
	return c, ok
}

// All returns the customers in registration order. The pointers are the
// directory's own records.
func (d *Directory) All() []*model.Customer {
	out := make([]*model.Customer, len(d.order))
	copy(out, d.order)
	return out
}

// Snapshot returns deep copies of every customer in registration order.
func (d *Directory) Snapshot() []model.Customer {
	out := make([]model.Customer, 0, len(d.order))
	for _, c := range d.order {
		out = append(out, c.Clone())
	}
	return out
}

// Len reports the number of registered customers.
func (d *Directory) Len() int { return len(d.order) }

// unregister drops the most recently registered customer if it is username.
// It only exists to roll back a registration whose write-through failed.
func (d *Directory) unregister(username string) {
	n := len(d.order)
	if n == 0 || d.order[n-1].Username != username {
		return
	}
	d.order = d.order[:n-1]
	delete(d.byName, username)
}
