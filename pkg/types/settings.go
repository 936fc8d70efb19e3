package types

import "github.com/shopspring/decimal"

// Currency describes how amounts are presented; the engine never converts.
type Currency struct {
	Code     string `json:"code"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// StoreProfile is printed on receipts.
type StoreProfile struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Settings drive every totals recalculation.
type Settings struct {
	TaxRate      decimal.Decimal `json:"tax_rate"`
	TaxIncluded  bool            `json:"tax_included"`
	RoundingStep decimal.Decimal `json:"rounding_step"`
	Currency     Currency        `json:"currency"`
	Store        StoreProfile    `json:"store"`
}
