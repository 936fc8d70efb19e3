package types

import "github.com/shopspring/decimal"

// CustomItemID marks ad-hoc lines that have no catalog reference.
const (
	CustomItemID  = "custom"
	CustomItemSKU = "CUS"
)

// LineItem is one product/quantity/price entry in the working cart.
type LineItem struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"item_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountAmt decimal.Decimal `json:"discount_amt"`
	LineTotal   decimal.Decimal `json:"line_total"`
	LowStock    bool            `json:"low_stock,omitempty"`
}

// Base is the undiscounted line amount, unit price times quantity.
func (l LineItem) Base() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// CloneLines copies a slice of lines so callers cannot mutate aggregate state.
func CloneLines(lines []LineItem) []LineItem {
	if lines == nil {
		return []LineItem{}
	}
	out := make([]LineItem, len(lines))
	copy(out, lines)
	return out
}
