// Package repository persists the ledger between process runs. State is
// stored as three independently addressable blobs (tickets, users, admin)
// behind the Store interface, with backends for a local directory, an
// embedded badger database, redis and SQL tables.
package repository

import "errors"

// ErrPersistenceCorrupt is returned when a stored blob exists but cannot be
// decoded: wrong magic, checksum mismatch or an undecodable payload. An
// absent blob is never reported with this error; callers treat absence as
// empty state and corruption as fatal for the load.
var ErrPersistenceCorrupt = errors.New("persisted state is corrupt")

// ErrUnknownBackend is returned by Open for a store kind it does not know.
var ErrUnknownBackend = errors.New("unknown store backend")
