package types

import "github.com/shopspring/decimal"

// SaleDraft is what the cart hands to sale persistence at checkout.
type SaleDraft struct {
	CashierID     string          `json:"cashier_id"`
	Customer      *Customer       `json:"customer,omitempty"`
	Lines         []LineItem      `json:"lines"`
	Totals        Totals          `json:"totals"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	Note          string          `json:"note,omitempty"`
}
