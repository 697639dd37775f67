package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TicketDefinition describes one sellable ticket type in the catalog.
//
// Fields:
//
//	TypeName        – lookup key inside the catalog (e.g. "Single-Day Pass").
//	UnitPrice       – price of a single ticket, always positive.
//	Validity        – opaque label shown to customers (e.g. "1 Day").
//	DiscountPercent – percentage taken off the total, in [0,100].
type TicketDefinition struct {
	TypeName        string
	UnitPrice       decimal.Decimal
	Validity        string
	DiscountPercent decimal.Decimal
}

// NewTicket builds a definition from whole-number price and discount values,
// which is how the park's default passes are expressed.
func NewTicket(typeName string, price int64, validity string, discount int64) TicketDefinition {
	return TicketDefinition{
		TypeName:        typeName,
		UnitPrice:       decimal.NewFromInt(price),
		Validity:        validity,
		DiscountPercent: decimal.NewFromInt(discount),
	}
}

// Validate reports ErrInvalidTicket when the definition cannot be priced.
func (t TicketDefinition) Validate() error {
	switch {
	case t.TypeName == "":
		return fmt.Errorf("%w: empty type name", ErrInvalidTicket)
	case !t.UnitPrice.IsPositive():
		return fmt.Errorf("%w: unit price %s must be positive", ErrInvalidTicket, t.UnitPrice)
	case t.DiscountPercent.IsNegative() || t.DiscountPercent.GreaterThan(hundred):
		return fmt.Errorf("%w: discount %s outside [0,100]", ErrInvalidTicket, t.DiscountPercent)
	}
	return nil
}

// Price returns the total for quantity tickets of this type.
func (t TicketDefinition) Price(quantity int) (decimal.Decimal, error) {
	return CalculatePrice(t.UnitPrice, quantity, t.DiscountPercent)
}

// CalculatePrice multiplies unitPrice by quantity and, when discount is
// positive, subtracts discount percent of that total. The arithmetic is
// exact decimal arithmetic so a zero discount yields unitPrice*quantity
// with no rounding.
func CalculatePrice(unitPrice decimal.Decimal, quantity int, discount decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if discount.IsPositive() {
		total = total.Sub(total.Mul(discount).Div(hundred))
	}
	return total, nil
}
