package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is the number of decimal places every currency output is rounded to
const Cents = 2

// NonNegative clamps a negative amount to zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SumNonNegative adds the amounts after clamping each one to zero
func SumNonNegative(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(NonNegative(v))
	}
	return total
}

// RoundCents rounds the amount to cents using banker's rounding
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Cents)
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Increments returns how many whole or partial increments of size step fit into amount.
// A non-positive amount or step yields zero.
func Increments(amount, step decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() || !step.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(step).Ceil()
}

// ParseOrZero parses user-entered currency ("$1,234.50", " 12 ") and returns zero for
// anything blank, malformed or negative
func ParseOrZero(s string) decimal.Decimal {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return NonNegative(d)
}

// Format formats an amount as dollars with two decimals
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(Cents)
}
