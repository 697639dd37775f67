// Package model holds the ledger's domain records: ticket definitions,
// customers with their purchase history, and the administrative account
// that tallies sales. The types carry no persistence concerns; the
// repository layer encodes them as opaque blobs.
package model

import "errors"

// ErrInvalidQuantity is returned when a purchase quantity is zero or
// negative. It is checked before any state is touched.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrInvalidTicket is returned when a ticket definition has an empty type
// name, a non-positive unit price or a discount outside [0,100].
var ErrInvalidTicket = errors.New("invalid ticket definition")
