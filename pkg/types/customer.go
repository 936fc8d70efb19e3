package types

// Customer is the buyer attached to a sale.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
}

// Clone returns a copy of the customer pointer.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
