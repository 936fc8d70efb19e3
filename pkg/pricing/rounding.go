// Package pricing holds the pure money arithmetic of the till: step rounding,
// discounts, tax-inclusive/exclusive totals and payment reconciliation.
package pricing

import "github.com/shopspring/decimal"

// RoundToStep snaps value to the nearest multiple of step, half away from zero,
// then to two decimals. A step at or below zero disables rounding.
func RoundToStep(value, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return value
	}
	return value.Div(step).Round(0).Mul(step).Round(2)
}

// Round2 rounds to cents.
func Round2(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

// Sum adds the provided amounts.
func Sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
