package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// PaymentSummary reconciles tendered payments against the amount due.
type PaymentSummary struct {
	Due       decimal.Decimal `json:"due"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
	Change    decimal.Decimal `json:"change"`
}

// Covered reports whether the payments settle the amount due.
func (p PaymentSummary) Covered() bool {
	return p.Remaining.IsZero()
}

// SummarizePayments adds up split payments and works out what is still owed
// or what change is due back.
func SummarizePayments(grandTotal decimal.Decimal, payments []types.Payment) PaymentSummary {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	summary := PaymentSummary{
		Due:       grandTotal,
		Paid:      paid,
		Remaining: decimal.Zero,
		Change:    decimal.Zero,
	}
	diff := grandTotal.Sub(paid)
	if diff.IsPositive() {
		summary.Remaining = diff
	} else {
		summary.Change = diff.Neg()
	}
	return summary
}
