package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shekhakhaled/adventureland-tickets/internal/booking"
	"github.com/shekhakhaled/adventureland-tickets/internal/model"
)

func TestDirectory_Register(t *testing.T) {
	d := booking.NewDirectory()
	c, err := d.Register("hajer", "hajer@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "hajer", c.Username)
	assert.Empty(t, c.History)

	_, err = d.Register("hajer", "other@gmail.com")
	require.ErrorIs(t, err, booking.ErrAlreadyExists)
	assert.Equal(t, 1, d.Len())

	got, ok := d.FindByUsername("hajer")
	require.True(t, ok)
	assert.Equal(t, "hajer@gmail.com", got.Email)
}

func TestDirectory_KeepsRegistrationOrder(t *testing.T) {
	d := booking.NewDirectory()
	for _, name := range []string{"sara", "abdullah", "rauda", "mohammed"} {
		_, err := d.Register(name, name+"@gmail.com")
		require.NoError(t, err)
	}
	var names []string
	for _, c := range d.All() {
		names = append(names, c.Username)
	}
	assert.Equal(t, []string{"sara", "abdullah", "rauda", "mohammed"}, names)
}

func TestNewDirectory_FirstRecordWins(t *testing.T) {
	d := booking.NewDirectory(
		model.Customer{Username: "shekha", Email: "first@gmail.com"},
		model.Customer{Username: "shekha", Email: "second@gmail.com"},
	)
	require.Equal(t, 1, d.Len())
	c, _ := d.FindByUsername("shekha")
	assert.Equal(t, "first@gmail.com", c.Email)
}

func TestDirectory_SnapshotIsDeep(t *testing.T) {
	d := booking.NewDirectory()
	c, err := d.Register("sara", "sara@gmail.com")
	require.NoError(t, err)
	c.AddPurchase(model.PurchaseRecord{TicketType: "Child Ticket", Quantity: 2})

	snap := d.Snapshot()
	snap[0].History[0].Quantity = 7
	assert.Equal(t, 2, c.History[0].Quantity)
}
