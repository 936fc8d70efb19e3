package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// State is a read-only copy of the working cart.
type State struct {
	Status        enums.CartStatus `json:"status"`
	Lines         []types.LineItem `json:"lines"`
	Customer      *types.Customer  `json:"customer,omitempty"`
	OrderDiscount *types.Discount  `json:"order_discount,omitempty"`
	Totals        types.Totals     `json:"totals"`
	LineCount     int              `json:"line_count"`
	DiscountTotal decimal.Decimal  `json:"discount_total"`
}

// Snapshot is the hold/resume unit of the state.
func (s State) Snapshot() types.CartSnapshot {
	return types.CartSnapshot{
		Lines:         types.CloneLines(s.Lines),
		Customer:      s.Customer.Clone(),
		OrderDiscount: s.OrderDiscount.Clone(),
	}
}
