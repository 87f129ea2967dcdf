// Package money formats monetary amounts for display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders amount as an en-US dollar string, e.g. "$1,234.50" or
// "-$5.00". The amount is rounded half away from zero to cents first.
func FormatUSD(amount decimal.Decimal) string {
	cents := amount.Round(2)
	sign := ""
	if cents.IsNegative() {
		sign = "-"
		cents = cents.Neg()
	}
	return sign + "$" + printer.Sprint(number.Decimal(cents.InexactFloat64(), number.Scale(2)))
}
