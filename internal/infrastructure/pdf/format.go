package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Amounts are grouped the Indian way (lakh/crore) using CLDR data for en-IN.
var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders d with two decimals and en-IN digit grouping, e.g. 1,23,456.00.
func FormatAmount(d decimal.Decimal) string {
	return inPrinter.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatCurrency is FormatAmount prefixed with the rupee code. The core PDF fonts cannot
// draw the rupee sign.
func FormatCurrency(d decimal.Decimal) string {
	return "INR " + FormatAmount(d)
}
