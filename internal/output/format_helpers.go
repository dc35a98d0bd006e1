package output

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer   = message.NewPrinter(language.English)
	titleCase = cases.Title(language.English)
)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatCurrencyGrouped formats a decimal as USD with thousands separators, e.g. $120,500.00.
// Negative amounts are rendered as -$1,234.00.
func FormatCurrencyGrouped(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole := amount.Truncate(0)
	cents := amount.Sub(whole).Shift(2).Round(0).IntPart()
	if cents == 100 {
		whole = whole.Add(decimal.NewFromInt(1))
		cents = 0
	}
	return printer.Sprintf("%s$%d.%02d", sign, whole.IntPart(), cents)
}

// FormatRate formats a fractional rate (0.12) as a whole-number percentage (12%).
func FormatRate(rate decimal.Decimal) string {
	return rate.Shift(2).Round(1).String() + "%"
}

// HumanizeKey turns a snake_case identifier such as "gambling_losses" into "Gambling Losses".
func HumanizeKey(key string) string {
	return titleCase.String(strings.ReplaceAll(strings.TrimSpace(key), "_", " "))
}
