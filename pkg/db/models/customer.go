package models

import (
	"time"

	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// Customer persists buyers that can be attached to a sale.
type Customer struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Phone     *string   `gorm:"column:phone"`
	TaxID     *string   `gorm:"column:tax_id"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Customer) TableName() string { return "customers" }

// ToType converts the row into the value attached to carts and sales.
func (c Customer) ToType() types.Customer {
	return types.Customer{
		ID:      c.ID,
		Name:    c.Name,
		Phone:   deref(c.Phone),
		TaxID:   deref(c.TaxID),
		Address: deref(c.Address),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
