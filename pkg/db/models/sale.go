package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// Sale is the durable record of a completed (or open) transaction.
type Sale struct {
	ID            string           `gorm:"column:id;primaryKey" json:"id"`
	Number        string           `gorm:"column:number;not null;uniqueIndex" json:"number"`
	Datetime      time.Time        `gorm:"column:sold_at;not null" json:"datetime"`
	CashierID     string           `gorm:"column:cashier_id;not null" json:"cashier_id"`
	CustomerID    *string          `gorm:"column:customer_id" json:"customer_id,omitempty"`
	Customer      *types.Customer  `gorm:"column:customer;serializer:json" json:"customer,omitempty"`
	Lines         []types.LineItem `gorm:"column:lines;serializer:json;not null" json:"lines"`
	Subtotal      decimal.Decimal  `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	Tax           decimal.Decimal  `gorm:"column:tax;type:numeric(12,2);not null" json:"tax"`
	GrandTotal    decimal.Decimal  `gorm:"column:grand_total;type:numeric(12,2);not null" json:"grand_total"`
	DiscountTotal decimal.Decimal  `gorm:"column:discount_total;type:numeric(12,2);not null" json:"discount_total"`
	Payments      []types.Payment  `gorm:"column:payments;serializer:json;not null" json:"payments"`
	Note          string           `gorm:"column:note" json:"note,omitempty"`
	Status        enums.SaleStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Sale) TableName() string { return "sales" }
