package enums

import "fmt"

// SaleStatus tracks the lifecycle of a persisted sale record.
type SaleStatus string

const (
	SaleStatusOpen SaleStatus = "OPEN"
	SaleStatusHeld SaleStatus = "HELD"
	SaleStatusPaid SaleStatus = "PAID"
	SaleStatusVoid SaleStatus = "VOID"
)

var validSaleStatuses = []SaleStatus{
	SaleStatusOpen,
	SaleStatusHeld,
	SaleStatusPaid,
	SaleStatusVoid,
}

// String implements fmt.Stringer.
func (s SaleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SaleStatus.
func (s SaleStatus) IsValid() bool {
	for _, candidate := range validSaleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSaleStatus converts raw input into a SaleStatus.
func ParseSaleStatus(value string) (SaleStatus, error) {
	for _, candidate := range validSaleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale status %q", value)
}
