package queue_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shekhakhaled/adventureland-tickets/internal/queue"
)

func TestSalesConsumer_HandleMessage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := queue.SalesConsumer{LogDir: dir}

	for _, ev := range []queue.TicketSoldEvent{
		{EventID: "e1", Username: "hajer", TicketType: "Single-Day Pass", Quantity: 2, TotalPrice: decimal.NewFromInt(550), Receipt: "R1", PaymentMethod: "Credit Card", SoldAt: "2026-10-14T09:00:00Z"},
		{EventID: "e2", Username: "abdullah", TicketType: "Two-Day Pass", Quantity: 1, TotalPrice: decimal.RequireFromString("432.0"), Receipt: "R2", SoldAt: "2026-10-14T09:05:00Z"},
	} {
		body, err := json.Marshal(ev)
		require.NoError(t, err)
		require.NoError(t, c.HandleMessage(body))
	}

	data, err := os.ReadFile(filepath.Join(dir, "sales.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[2026-10-14T09:00:00Z] Ticket sold | receipt=R1 | user=hajer | ticket="Single-Day Pass" | quantity=2 | total=550.00 DHS | payment="Credit Card"`, lines[0])
	assert.Contains(t, lines[1], `total=432.00 DHS | payment=""`)
}

func TestSalesConsumer_RejectsBadPayloads(t *testing.T) {
	c := queue.SalesConsumer{LogDir: t.TempDir()}
	require.Error(t, c.HandleMessage([]byte("{not json")))
	require.Error(t, c.HandleMessage([]byte(`{"event_id":"e3","username":"sara","ticket_type":"Child Ticket","quantity":0}`)))

	_, err := os.Stat(filepath.Join(c.LogDir, "sales.log"))
	assert.True(t, os.IsNotExist(err))
}
