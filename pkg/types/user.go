package types

import "github.com/angelmondragon/packfinderz-pos/pkg/enums"

// User is a till operator.
type User struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Role enums.UserRole `json:"role"`
}
