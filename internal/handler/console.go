// Package handler renders the ledger on a line-oriented terminal. Each input
// line is one command; results and errors are printed as plain messages so
// the booking core never writes to the terminal itself.
package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shekhakhaled/adventureland-tickets/internal/booking"
	"github.com/shekhakhaled/adventureland-tickets/internal/model"
	"github.com/shekhakhaled/adventureland-tickets/internal/utils"
)

const helpText = `Commands:
  tickets                                            list ticket types
  register <username> <email>                        register a customer
  buy <username> <quantity> <payment> <ticket type>  purchase tickets; payment is card or wallet
  history                                            show every customer's purchases
  receipt <code>                                     look up a purchase by receipt code
  sales                                              show admin sales data
  help                                               show this help
  quit                                               save and exit`

// paymentAliases maps the single-word names typed at the prompt to the
// methods recorded on a purchase. Other words are recorded as typed.
var paymentAliases = map[string]string{
	"card":   model.PaymentCreditCard,
	"wallet": model.PaymentDigitalWallet,
}

// Console drives a booking.System from text commands.
type Console struct {
	System *booking.System // ledger that executes every command
	Out    io.Writer       // destination for messages
}

// NewConsole constructs a Console and panics if sys is nil.
func NewConsole(sys *booking.System, out io.Writer) *Console {
	if sys == nil {
		panic("nil system passed to NewConsole")
	}
	return &Console{System: sys, Out: out}
}

// Run reads commands from in until "quit", end of input or cancellation of
// ctx. A context cancelled between lines stops the loop after the current
// line finishes.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	c.printf("Welcome to Adventure Land ticket sales. Type \"help\" for commands.\n")
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if quit := c.Exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Exec runs a single command line and reports whether it asked to quit.
func (c *Console) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	case "help":
		c.printf("%s\n", helpText)
	case "tickets":
		c.tickets()
	case "register":
		c.register(ctx, fields[1:])
	case "buy":
		c.buy(ctx, fields[1:])
	case "history":
		c.history()
	case "receipt":
		c.receipt(fields[1:])
	case "sales":
		c.sales()
	default:
		c.printf("Error: unknown command %q. Type \"help\" for commands.\n", fields[0])
	}
	return false
}

func (c *Console) tickets() {
	defs := c.System.Tickets()
	if len(defs) == 0 {
		c.printf("No tickets available.\n")
		return
	}
	c.printf("Tickets in the system:\n")
	for _, t := range defs {
		c.printf("%s - Price: %s, Validity: %s, Discount: %s%%\n",
			t.TypeName, utils.FormatPrice(t.UnitPrice), t.Validity, t.DiscountPercent)
	}
}

func (c *Console) register(ctx context.Context, args []string) {
	if len(args) != 2 {
		c.printf("Usage: register <username> <email>\n")
		return
	}
	username, email := args[0], args[1]
	err := c.System.Register(ctx, username, email)
	switch {
	case err == nil:
		c.printf("User '%s' registered successfully!\n", username)
	case errors.Is(err, booking.ErrAlreadyExists):
		c.printf("Error: User '%s' already exists!\n", username)
	case errors.Is(err, booking.ErrMissingDetails):
		c.printf("Error: Please fill in all fields.\n")
	default:
		c.printf("Error: registration failed: %v\n", err)
	}
}

func (c *Console) buy(ctx context.Context, args []string) {
	if len(args) < 4 {
		c.printf("Usage: buy <username> <quantity> <payment> <ticket type>\n")
		return
	}
	username := args[0]
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		c.printf("Error: quantity must be a positive whole number, got %q\n", args[1])
		return
	}
	payment := args[2]
	if method, ok := paymentAliases[strings.ToLower(payment)]; ok {
		payment = method
	}
	ticketType := strings.Join(args[3:], " ")

	res, err := c.System.Purchase(ctx, username, ticketType, quantity, payment)
	switch {
	case err == nil:
		c.printf("Purchase successful for '%s'! Total price: %s (receipt %s)\n",
			username, utils.FormatPrice(res.TotalPrice), res.Receipt)
		c.printf("Payment made using %s.\n", res.Payment)
	case errors.Is(err, booking.ErrUserNotRegistered):
		c.printf("Error: User '%s' not registered!\n", username)
	case errors.Is(err, booking.ErrTicketTypeNotFound):
		c.printf("Error: Ticket type '%s' not found!\n", ticketType)
	case errors.Is(err, model.ErrInvalidQuantity) && quantity > 0:
		c.printf("Error: %v\n", err)
	case errors.Is(err, model.ErrInvalidQuantity):
		c.printf("Error: quantity must be a positive whole number, got %d\n", quantity)
	default:
		c.printf("Error: purchase failed: %v\n", err)
	}
}

func (c *Console) history() {
	histories := c.System.AllHistories()
	if len(histories) == 0 {
		c.printf("No registered users.\n")
		return
	}
	c.printf("Purchases made:\n")
	for _, h := range histories {
		c.printf("User: %s\n", h.Username)
		for _, p := range h.Purchases {
			c.printf("  %s\n", describe(p))
		}
	}
}

func (c *Console) receipt(args []string) {
	if len(args) != 1 {
		c.printf("Usage: receipt <code>\n")
		return
	}
	code := args[0]
	username, p, ok := c.System.FindReceipt(code)
	switch {
	case ok:
		c.printf("Receipt %s for '%s': %s\n", code, username, describe(p))
	case !utils.ValidReceiptCode(code):
		c.printf("Error: '%s' is not a valid receipt code!\n", code)
	default:
		c.printf("Error: Receipt '%s' not found!\n", code)
	}
}

func describe(p model.PurchaseRecord) string {
	line := fmt.Sprintf("Ticket: %s, Quantity: %d, Total: %s", p.TicketType, p.Quantity, utils.FormatPrice(p.TotalPrice))
	if p.PaymentMethod != "" {
		line += ", Payment: " + p.PaymentMethod
	}
	return line
}

func (c *Console) sales() {
	c.printf("Admin sales data:\n")
	for ticketType, qty := range c.System.SalesReport() {
		c.printf("%s: %d tickets sold\n", ticketType, qty)
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}
