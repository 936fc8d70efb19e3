package types

import "github.com/shopspring/decimal"

// Totals are always derived from lines, the order discount and settings.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// CartSnapshot is the unit persisted by hold and restored by resume.
type CartSnapshot struct {
	Lines         []LineItem `json:"lines"`
	Customer      *Customer  `json:"customer,omitempty"`
	OrderDiscount *Discount  `json:"order_discount,omitempty"`
}
