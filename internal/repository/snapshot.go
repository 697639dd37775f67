package repository

import (
	"context"
	"fmt"

	"github.com/shekhakhaled/adventureland-tickets/internal/model"
)

// Blob names, listed in the order Save writes them.
const (
	BlobTickets = "tickets"
	BlobUsers   = "users"
	BlobAdmin   = "admin"
)

// Snapshot is the full durable state of the ledger. Admin is nil after a
// load when no admin blob was stored.
type Snapshot struct {
	Tickets   []model.TicketDefinition
	Customers []model.Customer
	Admin     *model.AdminAccount
}

// Store saves and restores snapshots.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
}

// BlobStore is the primitive every backend provides: atomic put and get of
// a single named blob. found is false when the blob has never been written.
type BlobStore interface {
	PutBlob(ctx context.Context, name string, data []byte) error
	GetBlob(ctx context.Context, name string) (data []byte, found bool, err error)
}

// Wrapper structs keep each blob extensible; gob skips fields unknown to
// the reader and zero-fills fields missing from the writer.
type ticketsBlob struct{ Tickets []model.TicketDefinition }
type usersBlob struct{ Customers []model.Customer }
type adminBlob struct{ Admin model.AdminAccount }

// saveSnapshot writes tickets, then users, then admin. It stops at the
// first failure; blobs written before it stay valid.
func saveSnapshot(ctx context.Context, b BlobStore, snap Snapshot) error {
	admin := model.NewAdminAccount()
	if snap.Admin != nil {
		admin = *snap.Admin
	}
	blobs := []struct {
		name  string
		value any
	}{
		{BlobTickets, ticketsBlob{Tickets: snap.Tickets}},
		{BlobUsers, usersBlob{Customers: snap.Customers}},
		{BlobAdmin, adminBlob{Admin: admin}},
	}
	for _, blob := range blobs {
		data, err := encodeBlob(blob.value)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", blob.name, err)
		}
		if err := b.PutBlob(ctx, blob.name, data); err != nil {
			return fmt.Errorf("writing %s: %w", blob.name, err)
		}
	}
	return nil
}

func loadSnapshot(ctx context.Context, b BlobStore) (Snapshot, error) {
	var snap Snapshot

	var tickets ticketsBlob
	found, err := readBlob(ctx, b, BlobTickets, &tickets)
	if err != nil {
		return Snapshot{}, err
	}
	if found {
		snap.Tickets = tickets.Tickets
	}

	var users usersBlob
	found, err = readBlob(ctx, b, BlobUsers, &users)
	if err != nil {
		return Snapshot{}, err
	}
	if found {
		snap.Customers = users.Customers
	}

	var admin adminBlob
	found, err = readBlob(ctx, b, BlobAdmin, &admin)
	if err != nil {
		return Snapshot{}, err
	}
	if found {
		snap.Admin = &admin.Admin
	}
	return snap, nil
}

func readBlob(ctx context.Context, b BlobStore, name string, v any) (bool, error) {
	data, found, err := b.GetBlob(ctx, name)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if !found {
		return false, nil
	}
	if err := decodeBlob(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", name, err)
	}
	return true, nil
}
