package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// ComputeTotals derives subtotal, tax and grand total from line amounts.
//
// In tax-included mode the line amounts already contain tax and it is backed
// out of the sum; otherwise tax is added on top. With a positive rounding step
// the grand total is snapped to the step and tax absorbs the difference: the
// subtotal is re-derived from the rounded total when tax is included and left
// at the pre-rounding sum when it is not. Either way subtotal + tax equals the
// grand total.
func ComputeTotals(lineTotals []decimal.Decimal, taxRate decimal.Decimal, taxIncluded bool, roundingStep decimal.Decimal) types.Totals {
	grand := Sum(lineTotals)
	divisor := decimal.NewFromInt(1).Add(taxRate)

	var subtotal, tax, grandTotal decimal.Decimal
	if taxIncluded {
		subtotal = grand.Div(divisor)
		tax = grand.Sub(subtotal)
		grandTotal = grand
	} else {
		subtotal = grand
		tax = grand.Mul(taxRate)
		grandTotal = subtotal.Add(tax)
	}

	if roundingStep.IsPositive() {
		grandTotal = RoundToStep(grandTotal, roundingStep)
		if taxIncluded {
			subtotal = grandTotal.Div(divisor)
		}
		tax = grandTotal.Sub(subtotal)
	}

	return types.Totals{Subtotal: subtotal, Tax: tax, GrandTotal: grandTotal}
}

// Settle rounds totals for storage: grand total and subtotal go to cents and
// tax is what is left, so the stored figures always add up.
func Settle(t types.Totals) types.Totals {
	grand := Round2(t.GrandTotal)
	subtotal := Round2(t.Subtotal)
	return types.Totals{Subtotal: subtotal, Tax: grand.Sub(subtotal), GrandTotal: grand}
}
