package types

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
)

// Payment is one tender applied to a sale. Sales may be split across several.
type Payment struct {
	ID     string            `json:"id"`
	Type   enums.PaymentType `json:"type"`
	Amount decimal.Decimal   `json:"amount"`
	Ref    string            `json:"ref,omitempty"`
}
