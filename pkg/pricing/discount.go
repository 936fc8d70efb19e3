package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// DiscountResult is the discounted amount and the amount taken off.
type DiscountResult struct {
	Amount      decimal.Decimal
	DiscountAmt decimal.Decimal
}

// ApplyDiscount takes d off amount. PERCENT is not clamped, so values above 100
// produce a negative amount; bounding is the caller's job. AMOUNT never takes
// off more than amount.
func ApplyDiscount(amount decimal.Decimal, d *types.Discount) DiscountResult {
	if d == nil {
		return DiscountResult{Amount: amount, DiscountAmt: decimal.Zero}
	}

	var off decimal.Decimal
	switch d.Kind {
	case enums.DiscountKindPercent:
		off = amount.Mul(d.Value).Div(types.PercentScale)
	case enums.DiscountKindAmount:
		off = decimal.Min(d.Value, amount)
	default:
		off = decimal.Zero
	}
	return DiscountResult{Amount: amount.Sub(off), DiscountAmt: off}
}

// AllocateOrderDiscount spreads an order-level discount over the line totals in
// proportion to each line's share of their sum. The returned amounts add up to
// the discounted sum. When the sum is zero the totals are returned unchanged.
func AllocateOrderDiscount(lineTotals []decimal.Decimal, d *types.Discount) []decimal.Decimal {
	out := make([]decimal.Decimal, len(lineTotals))
	copy(out, lineTotals)
	if d == nil {
		return out
	}

	before := Sum(lineTotals)
	if before.IsZero() {
		return out
	}

	after := ApplyDiscount(before, d).Amount
	for i, lt := range lineTotals {
		out[i] = lt.Mul(after).Div(before)
	}
	return out
}
