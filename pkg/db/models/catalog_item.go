package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// CatalogItem is a sellable product the till can scan.
type CatalogItem struct {
	ID          string          `gorm:"column:id;primaryKey" json:"id"`
	SKU         string          `gorm:"column:sku;not null;uniqueIndex" json:"sku"`
	Barcode     *string         `gorm:"column:barcode" json:"barcode,omitempty"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Brand       string          `gorm:"column:brand" json:"brand,omitempty"`
	Category    string          `gorm:"column:category" json:"category,omitempty"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	TaxIncluded bool            `gorm:"column:tax_included;not null;default:true" json:"tax_included"`
	StockQty    *int            `gorm:"column:stock_qty" json:"stock_qty,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (CatalogItem) TableName() string { return "catalog_items" }

// ToType converts the row into the value the cart consumes.
func (c CatalogItem) ToType() types.Item {
	return types.Item{
		ID:          c.ID,
		SKU:         c.SKU,
		Barcode:     deref(c.Barcode),
		Name:        c.Name,
		Brand:       c.Brand,
		Category:    c.Category,
		Price:       c.Price,
		TaxIncluded: c.TaxIncluded,
		StockQty:    c.StockQty,
	}
}
