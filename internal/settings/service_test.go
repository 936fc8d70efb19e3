package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/packfinderz-pos/pkg/config"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

func defaults() types.Settings {
	return types.Settings{
		TaxRate:      decimal.RequireFromString("0.07"),
		TaxIncluded:  true,
		RoundingStep: decimal.Zero,
		Currency:     types.Currency{Code: "THB", Symbol: "฿", Decimals: 2},
		Store:        types.StoreProfile{Name: "My Music Store"},
	}
}

func TestNewServiceUsesDefaultsWhenNothingStored(t *testing.T) {
	svc, err := NewService(context.Background(), ServiceParams{Store: kvstore.NewMemory(), Defaults: defaults()})
	require.NoError(t, err)

	got := svc.Snapshot()
	assert.True(t, got.TaxRate.Equal(decimal.RequireFromString("0.07")))
	assert.True(t, got.TaxIncluded)
	assert.Equal(t, "THB", got.Currency.Code)
}

func TestNewServiceMergesStoredOverDefaults(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, kvstore.KeySettings, `{"tax_included":false,"rounding_step":"0.25"}`))

	svc, err := NewService(ctx, ServiceParams{Store: store, Defaults: defaults()})
	require.NoError(t, err)

	got := svc.Snapshot()
	assert.False(t, got.TaxIncluded)
	assert.True(t, got.RoundingStep.Equal(decimal.RequireFromString("0.25")))
	assert.True(t, got.TaxRate.Equal(decimal.RequireFromString("0.07")), "missing fields keep defaults")
	assert.Equal(t, "My Music Store", got.Store.Name)
}

func TestSettersPersist(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	svc, err := NewService(ctx, ServiceParams{Store: store, Defaults: defaults()})
	require.NoError(t, err)

	_, err = svc.SetTaxRate(ctx, decimal.RequireFromString("0.1"))
	require.NoError(t, err)
	_, err = svc.SetTaxIncluded(ctx, false)
	require.NoError(t, err)
	_, err = svc.SetRoundingStep(ctx, decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	_, err = svc.SetStoreProfile(ctx, types.StoreProfile{Name: "Shop", Phone: "555"})
	require.NoError(t, err)

	reloaded, err := NewService(ctx, ServiceParams{Store: store, Defaults: defaults()})
	require.NoError(t, err)
	got := reloaded.Snapshot()
	assert.True(t, got.TaxRate.Equal(decimal.RequireFromString("0.1")))
	assert.False(t, got.TaxIncluded)
	assert.True(t, got.RoundingStep.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, types.StoreProfile{Name: "Shop", Phone: "555"}, got.Store)
}

func TestInvalidChangesAreRejected(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(ctx, ServiceParams{Store: kvstore.NewMemory(), Defaults: defaults()})
	require.NoError(t, err)

	_, err = svc.SetTaxRate(ctx, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.SetRoundingStep(ctx, decimal.RequireFromString("-0.25"))
	require.Error(t, err)

	assert.True(t, svc.Snapshot().TaxRate.Equal(decimal.RequireFromString("0.07")), "state unchanged")
}

func TestResetRestoresDefaults(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	svc, err := NewService(ctx, ServiceParams{Store: store, Defaults: defaults()})
	require.NoError(t, err)

	_, err = svc.SetTaxIncluded(ctx, false)
	require.NoError(t, err)
	got, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.True(t, got.TaxIncluded)

	raw, err := store.Get(ctx, kvstore.KeySettings)
	require.NoError(t, err)
	assert.Contains(t, raw, `"tax_included":true`)
}

func TestPersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(ctx, ServiceParams{Store: failingStore{}, Defaults: defaults()})
	require.NoError(t, err)

	_, err = svc.SetTaxIncluded(ctx, false)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.True(t, svc.Snapshot().TaxIncluded)
}

func TestDefaultsFromConfig(t *testing.T) {
	got, err := DefaultsFromConfig(config.SettingsDefaults{
		TaxRate:          "0.07",
		TaxIncluded:      true,
		RoundingStep:     "0.25",
		CurrencyCode:     "thb",
		CurrencySymbol:   "฿",
		CurrencyDecimals: 2,
		StoreName:        "Shop",
	})
	require.NoError(t, err)
	assert.Equal(t, "THB", got.Currency.Code)
	assert.True(t, got.RoundingStep.Equal(decimal.RequireFromString("0.25")))

	_, err = DefaultsFromConfig(config.SettingsDefaults{TaxRate: "abc"})
	require.Error(t, err)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) { return "", kvstore.ErrNotFound }
func (failingStore) Set(context.Context, string, string) error    { return errors.New("disk full") }
func (failingStore) Delete(context.Context, string) error         { return errors.New("disk full") }
