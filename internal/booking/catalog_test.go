package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shekhakhaled/adventureland-tickets/internal/booking"
	"github.com/shekhakhaled/adventureland-tickets/internal/model"
)

func TestCatalog_FindByType(t *testing.T) {
	c := booking.NewCatalog(booking.DefaultTickets()...)
	require.Equal(t, 6, c.Len())

	got, ok := c.FindByType("Group Ticket")
	require.True(t, ok)
	assert.Equal(t, "1 Day", got.Validity)
	assert.Equal(t, "20", got.DiscountPercent.String())

	_, ok = c.FindByType("group ticket")
	assert.False(t, ok, "lookup is exact")
}

func TestCatalog_DuplicateTypeResolvesToFirst(t *testing.T) {
	c := booking.NewCatalog()
	c.Add(model.NewTicket("Single-Day Pass", 275, "1 Day", 0))
	c.Add(model.NewTicket("Single-Day Pass", 999, "1 Day", 0))

	got, ok := c.FindByType("Single-Day Pass")
	require.True(t, ok)
	assert.Equal(t, "275", got.UnitPrice.String())
	assert.Equal(t, []string{"Single-Day Pass", "Single-Day Pass"}, c.Types())
}

func TestCatalog_AllIsACopy(t *testing.T) {
	c := booking.NewCatalog(model.NewTicket("Child Ticket", 185, "1 Day", 0))
	all := c.All()
	all[0].TypeName = "changed"

	_, ok := c.FindByType("Child Ticket")
	assert.True(t, ok)
}
