package booking

import "github.com/shekhakhaled/adventureland-tickets/internal/model"

// DefaultTickets returns the passes the park sells on a fresh install.
func DefaultTickets() []model.TicketDefinition {
	return []model.TicketDefinition{
		model.NewTicket("Single-Day Pass", 275, "1 Day", 0),
		model.NewTicket("Two-Day Pass", 480, "2 Days", 10),
		model.NewTicket("Annual Membership", 1840, "1 Year", 15),
		model.NewTicket("Child Ticket", 185, "1 Day", 0),
		model.NewTicket("Group Ticket", 220, "1 Day", 20),
		model.NewTicket("VIP Experience Pass", 550, "1 Day", 0),
	}
}
