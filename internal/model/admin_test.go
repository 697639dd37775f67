package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shekhakhaled/adventureland-tickets/internal/model"
)

func collect(l *model.SalesLedger) []model.SaleCount {
	var out []model.SaleCount
	for ticketType, qty := range l.Report() {
		out = append(out, model.SaleCount{TicketType: ticketType, Quantity: qty})
	}
	return out
}

func TestSalesLedger_RecordSale(t *testing.T) {
	var l model.SalesLedger
	l.RecordSale("Group Ticket", 3)
	l.RecordSale("Single-Day Pass", 2)
	l.RecordSale("Group Ticket", 1)

	assert.Equal(t, 4, l.Quantity("Group Ticket"))
	assert.Equal(t, 2, l.Quantity("Single-Day Pass"))
	assert.Equal(t, 0, l.Quantity("VIP Experience Pass"))
	assert.Equal(t, []model.SaleCount{
		{TicketType: "Group Ticket", Quantity: 4},
		{TicketType: "Single-Day Pass", Quantity: 2},
	}, collect(&l))
}

func TestSalesLedger_ReportIsRestartable(t *testing.T) {
	var l model.SalesLedger
	l.RecordSale("Child Ticket", 2)

	first := collect(&l)
	second := collect(&l)
	require.Equal(t, first, second)

	for range l.Report() {
		break
	}
	assert.Len(t, collect(&l), 1)
}

func TestSalesLedger_RevertSale(t *testing.T) {
	var l model.SalesLedger
	l.RecordSale("Child Ticket", 2)
	l.RecordSale("Child Ticket", 1)
	l.RevertSale("Child Ticket", 1)
	assert.Equal(t, 2, l.Quantity("Child Ticket"))

	l.RecordSale("Annual Membership", 1)
	l.RevertSale("Annual Membership", 1)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, l.Quantity("Annual Membership"))

	l.RecordSale("Annual Membership", 1)
	assert.Equal(t, []model.SaleCount{
		{TicketType: "Child Ticket", Quantity: 2},
		{TicketType: "Annual Membership", Quantity: 1},
	}, collect(&l))
}

func TestSalesLedger_LookupAfterDirectAssignment(t *testing.T) {
	l := model.SalesLedger{Entries: []model.SaleCount{{TicketType: "VIP Experience Pass", Quantity: 5}}}
	l.RecordSale("VIP Experience Pass", 1)
	assert.Equal(t, 6, l.Quantity("VIP Experience Pass"))
	assert.Equal(t, 1, l.Len())
}

func TestAdminAccount_CloneIsIndependent(t *testing.T) {
	admin := model.NewAdminAccount()
	admin.RecordSale("Single-Day Pass", 2)

	clone := admin.Clone()
	admin.RecordSale("Single-Day Pass", 3)

	assert.Equal(t, model.AdminUsername, clone.Profile.Username)
	assert.Equal(t, 2, clone.Sales.Quantity("Single-Day Pass"))
	assert.Equal(t, 5, admin.Sales.Quantity("Single-Day Pass"))
}

func TestCustomer_History(t *testing.T) {
	c := model.Customer{Username: "sara", Email: "sara@gmail.com"}
	c.AddPurchase(model.PurchaseRecord{TicketType: "Child Ticket", Quantity: 2})
	c.AddPurchase(model.PurchaseRecord{TicketType: "Group Ticket", Quantity: 3})

	h := c.PurchaseHistory()
	h[0].Quantity = 99
	assert.Equal(t, 2, c.History[0].Quantity)

	c.RevertPurchase()
	require.Len(t, c.History, 1)
	assert.Equal(t, "Child Ticket", c.History[0].TicketType)
}

func TestSalesLedger_CanRecord(t *testing.T) {
	var l model.SalesLedger
	assert.True(t, l.CanRecord("Single-Day Pass", math.MaxInt))

	l.RecordSale("Single-Day Pass", math.MaxInt-1)
	assert.True(t, l.CanRecord("Single-Day Pass", 1))
	assert.False(t, l.CanRecord("Single-Day Pass", 2))
	assert.True(t, l.CanRecord("Child Ticket", 2), "other counters are unaffected")
	assert.False(t, l.CanRecord("Child Ticket", -1))
}
