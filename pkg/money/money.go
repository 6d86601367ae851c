// Package money formatea montos en VND para el PDF y la CLI.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency sufijo de moneda.
const Currency = "VND"

var printer = message.NewPrinter(language.English)

// Number formatea con separador de miles y hasta 3 decimales: 1805000 -> "1,805,000".
func Number(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.Round(3).InexactFloat64(), number.MaxFractionDigits(3)))
}

// VND igual que Number con el sufijo de moneda: "1,805,000 VND".
func VND(d decimal.Decimal) string {
	return Number(d) + " " + Currency
}
