// Package kvstore persists small documents (held sale, sale history, settings,
// cashier session) under well-known keys.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known keys.
const (
	KeyHeldSale    = "held_sale"
	KeySaleHistory = "sale_history"
	KeySettings    = "settings"
	KeyAuthUser    = "auth_user"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a durable string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// GetJSON decodes the document at key into T. found is false when the key is absent.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T
	found, err := LoadJSON(ctx, s, key, &out)
	return out, found, err
}

// LoadJSON decodes the document at key over dst, so fields missing from the
// stored document keep whatever dst already held.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
