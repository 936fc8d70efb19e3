package types

import "github.com/shopspring/decimal"

// Item is a sellable catalog entry as seen by the till.
type Item struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode,omitempty"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	TaxIncluded bool            `json:"tax_included"`
	StockQty    *int            `json:"stock_qty,omitempty"`
}
