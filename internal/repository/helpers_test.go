package repository_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shekhakhaled/adventureland-tickets/internal/model"
	"github.com/shekhakhaled/adventureland-tickets/internal/repository"
)

var snapshotOpts = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmpopts.IgnoreUnexported(model.SalesLedger{}),
	cmpopts.EquateEmpty(),
}

func sampleSnapshot() repository.Snapshot {
	admin := model.NewAdminAccount()
	admin.RecordSale("Single-Day Pass", 2)
	admin.RecordSale("Two-Day Pass", 1)

	return repository.Snapshot{
		Tickets: []model.TicketDefinition{
			model.NewTicket("Single-Day Pass", 275, "1 Day", 0),
			model.NewTicket("Two-Day Pass", 480, "2 Days", 10),
			model.NewTicket("Annual Membership", 1840, "1 Year", 15),
		},
		Customers: []model.Customer{
			{
				Username: "hajer",
				Email:    "hajer@gmail.com",
				History: []model.PurchaseRecord{
					{TicketType: "Single-Day Pass", Quantity: 2, TotalPrice: decimal.NewFromInt(550), Receipt: "3xQ9"},
				},
			},
			{
				Username: "abdullah",
				Email:    "abdullah@gmail.com",
				History: []model.PurchaseRecord{
					{TicketType: "Two-Day Pass", Quantity: 1, TotalPrice: decimal.RequireFromString("432.0")},
				},
			},
			{Username: "rauda", Email: "rauda@gmail.com"},
		},
		Admin: &admin,
	}
}

func requireSnapshotEqual(t *testing.T, want, got repository.Snapshot) {
	t.Helper()
	if diff := cmp.Diff(want, got, snapshotOpts); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store repository.Store) {
	t.Helper()
	ctx := context.Background()

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, empty.Tickets)
	require.Empty(t, empty.Customers)
	require.Nil(t, empty.Admin)

	want := sampleSnapshot()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	requireSnapshotEqual(t, want, got)

	// Saving again overwrites rather than appends.
	want.Customers = append(want.Customers, model.Customer{Username: "sara", Email: "sara@gmail.com"})
	want.Admin.RecordSale("Child Ticket", 2)
	require.NoError(t, store.Save(ctx, want))

	got, err = store.Load(ctx)
	require.NoError(t, err)
	requireSnapshotEqual(t, want, got)
	require.Equal(t, 2, got.Admin.Sales.Quantity("Child Ticket"))
}
