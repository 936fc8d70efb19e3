package types

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
)

// PercentScale is a full PERCENT discount; percent values are fractions of it.
var PercentScale = decimal.NewFromInt(100)

// Discount is a percent-or-amount reduction applied to a line or to the whole order.
type Discount struct {
	Kind  enums.DiscountKind `json:"type"`
	Value decimal.Decimal    `json:"value"`
}

// Percent builds a PERCENT discount.
func Percent(value decimal.Decimal) *Discount {
	return &Discount{Kind: enums.DiscountKindPercent, Value: value}
}

// Amount builds an AMOUNT discount.
func Amount(value decimal.Decimal) *Discount {
	return &Discount{Kind: enums.DiscountKindAmount, Value: value}
}

// Normalized returns a copy whose value is bounded to a sane range for its kind:
// PERCENT into [0,100], AMOUNT at or above zero. Nil stays nil.
func (d *Discount) Normalized() *Discount {
	if d == nil {
		return nil
	}
	out := *d
	if out.Value.IsNegative() {
		out.Value = decimal.Zero
	}
	if out.Kind == enums.DiscountKindPercent && out.Value.GreaterThan(PercentScale) {
		out.Value = PercentScale
	}
	return &out
}

// Clone returns a deep copy of the discount pointer.
func (d *Discount) Clone() *Discount {
	if d == nil {
		return nil
	}
	out := *d
	return &out
}
