// Package utils holds small formatting and identifier helpers shared by the
// console and the sale notifications.
package utils

import "github.com/shopspring/decimal"

// Currency is the label the park prints after every amount.
const Currency = "DHS"

// FormatPrice renders an amount with two decimals and the currency label,
// e.g. "432.00 DHS".
func FormatPrice(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " " + Currency
}
