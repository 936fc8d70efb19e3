package enums

import "fmt"

// CartStatus is the observable state of the working cart.
type CartStatus string

const (
	CartStatusEmpty  CartStatus = "EMPTY"
	CartStatusActive CartStatus = "ACTIVE"
)

var validCartStatuses = []CartStatus{
	CartStatusEmpty,
	CartStatusActive,
}

// String implements fmt.Stringer.
func (c CartStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartStatus.
func (c CartStatus) IsValid() bool {
	for _, candidate := range validCartStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartStatus converts raw input into a CartStatus.
func ParseCartStatus(value string) (CartStatus, error) {
	for _, candidate := range validCartStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart status %q", value)
}
