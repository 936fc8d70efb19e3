package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// Seed is the on-disk shape of a catalog seed file.
type Seed struct {
	Items     []types.Item     `json:"items"`
	Customers []types.Customer `json:"customers"`
}

// LoadSeedFile reads path and applies it. An empty path is a no-op.
func LoadSeedFile(ctx context.Context, svc Service, path string, logg *logger.Logger) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}
	return ApplySeed(ctx, svc, seed, logg)
}

// ApplySeed upserts every item and creates missing customers. Row failures are
// collected so one bad row does not stop the rest.
func ApplySeed(ctx context.Context, svc Service, seed Seed, logg *logger.Logger) error {
	if logg == nil {
		logg = logger.Nop()
	}

	var errs error
	for _, item := range seed.Items {
		if _, err := svc.UpsertItem(ctx, item); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %q: %w", item.SKU, err))
		}
	}
	for _, c := range seed.Customers {
		_, err := svc.CreateCustomer(ctx, CreateCustomerInput{
			ID:      c.ID,
			Name:    c.Name,
			Phone:   c.Phone,
			TaxID:   c.TaxID,
			Address: c.Address,
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("customer %q: %w", c.ID, err))
		}
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"items":     len(seed.Items),
		"customers": len(seed.Customers),
		"failed":    len(multierr.Errors(errs)),
	}), "catalog seed applied")
	return errs
}
