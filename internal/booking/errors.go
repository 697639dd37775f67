// Package booking implements the ticket-sales core: the catalog of ticket
// definitions, the directory of registered customers and the System that
// runs purchases against both while keeping the admin sales ledger and the
// durable store in step.
package booking

import "errors"

// ErrAlreadyExists is returned by registration when the username is taken.
// No state changes when it is returned.
var ErrAlreadyExists = errors.New("user already exists")

// ErrUserNotRegistered is returned by Purchase when the username is unknown.
var ErrUserNotRegistered = errors.New("user not registered")

// ErrTicketTypeNotFound is returned by Purchase when no catalog entry has
// the requested type name.
var ErrTicketTypeNotFound = errors.New("ticket type not found")

// ErrMissingDetails is returned by registration when the username or email
// is blank.
var ErrMissingDetails = errors.New("username and email are required")
