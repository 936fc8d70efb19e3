package cart

import (
	"context"

	"github.com/angelmondragon/packfinderz-pos/pkg/db/models"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// CatalogLookup resolves scanned codes. A nil item with nil error means no match.
type CatalogLookup interface {
	GetItemByBarcode(ctx context.Context, code string) (*types.Item, error)
}

// SettingsProvider supplies the tax and rounding settings read on every recalculation.
type SettingsProvider interface {
	Snapshot() types.Settings
}

// CashierIdentity names the operator stamped on each sale.
type CashierIdentity interface {
	CashierID() string
}

// SalePersistence records sales.
type SalePersistence interface {
	CreateSale(ctx context.Context, draft types.SaleDraft) (models.Sale, error)
	FinalizeSale(ctx context.Context, id string, payments []types.Payment) (models.Sale, error)
}
