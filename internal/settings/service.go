package settings

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/config"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

var one = decimal.NewFromInt(1)

// Provider is the read side consumed by the cart on every recalculation.
type Provider interface {
	Snapshot() types.Settings
}

// Service owns the till settings: loaded from storage once, persisted on every change.
type Service interface {
	Provider
	Update(ctx context.Context, input UpdateInput) (types.Settings, error)
	SetStoreProfile(ctx context.Context, profile types.StoreProfile) (types.Settings, error)
	SetTaxRate(ctx context.Context, rate decimal.Decimal) (types.Settings, error)
	SetTaxIncluded(ctx context.Context, included bool) (types.Settings, error)
	SetRoundingStep(ctx context.Context, step decimal.Decimal) (types.Settings, error)
	Reset(ctx context.Context) (types.Settings, error)
}

// UpdateInput is a partial change; nil fields are left alone.
type UpdateInput struct {
	TaxRate      *decimal.Decimal
	TaxIncluded  *bool
	RoundingStep *decimal.Decimal
	Currency     *types.Currency
	Store        *types.StoreProfile
}

// ServiceParams groups dependencies for the settings service.
type ServiceParams struct {
	Store    kvstore.Store
	Defaults types.Settings
	Logger   *logger.Logger
}

type service struct {
	store    kvstore.Store
	defaults types.Settings
	logg     *logger.Logger

	mu      sync.RWMutex
	current types.Settings
}

// NewService loads persisted settings merged over the defaults.
func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings store is required")
	}
	if err := validate(params.Defaults); err != nil {
		return nil, err
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	current := params.Defaults
	if _, err := kvstore.LoadJSON(ctx, params.Store, kvstore.KeySettings, &current); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	if err := validate(current); err != nil {
		logg.Warn(ctx, "persisted settings invalid, falling back to defaults")
		current = params.Defaults
	}

	return &service{
		store:    params.Store,
		defaults: params.Defaults,
		logg:     logg,
		current:  current,
	}, nil
}

// DefaultsFromConfig converts the env defaults into a settings value.
func DefaultsFromConfig(cfg config.SettingsDefaults) (types.Settings, error) {
	rate, err := cfg.Rate()
	if err != nil {
		return types.Settings{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid default tax rate")
	}
	out := types.Settings{
		TaxRate:      rate,
		TaxIncluded:  cfg.TaxIncluded,
		RoundingStep: cfg.Step(),
		Currency: types.Currency{
			Code:     strings.ToUpper(cfg.CurrencyCode),
			Symbol:   cfg.CurrencySymbol,
			Decimals: cfg.CurrencyDecimals,
		},
		Store: types.StoreProfile{
			Name:    cfg.StoreName,
			TaxID:   cfg.StoreTaxID,
			Address: cfg.StoreAddress,
			Phone:   cfg.StorePhone,
		},
	}
	return out, validate(out)
}

func (s *service) Snapshot() types.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *service) Update(ctx context.Context, input UpdateInput) (types.Settings, error) {
	return s.mutate(ctx, func(next *types.Settings) {
		if input.TaxRate != nil {
			next.TaxRate = *input.TaxRate
		}
		if input.TaxIncluded != nil {
			next.TaxIncluded = *input.TaxIncluded
		}
		if input.RoundingStep != nil {
			next.RoundingStep = *input.RoundingStep
		}
		if input.Currency != nil {
			next.Currency = *input.Currency
		}
		if input.Store != nil {
			next.Store = *input.Store
		}
	})
}

func (s *service) SetStoreProfile(ctx context.Context, profile types.StoreProfile) (types.Settings, error) {
	return s.Update(ctx, UpdateInput{Store: &profile})
}

func (s *service) SetTaxRate(ctx context.Context, rate decimal.Decimal) (types.Settings, error) {
	return s.Update(ctx, UpdateInput{TaxRate: &rate})
}

func (s *service) SetTaxIncluded(ctx context.Context, included bool) (types.Settings, error) {
	return s.Update(ctx, UpdateInput{TaxIncluded: &included})
}

func (s *service) SetRoundingStep(ctx context.Context, step decimal.Decimal) (types.Settings, error) {
	return s.Update(ctx, UpdateInput{RoundingStep: &step})
}

// Reset writes the defaults back to storage.
func (s *service) Reset(ctx context.Context) (types.Settings, error) {
	return s.mutate(ctx, func(next *types.Settings) {
		*next = s.defaults
	})
}

func (s *service) mutate(ctx context.Context, apply func(*types.Settings)) (types.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	apply(&next)
	if err := validate(next); err != nil {
		return s.current, err
	}
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeySettings, next); err != nil {
		s.logg.Error(ctx, "persist settings failed", err)
		return s.current, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist settings")
	}
	s.current = next
	return next, nil
}

func validate(st types.Settings) error {
	if st.TaxRate.IsNegative() || st.TaxRate.GreaterThanOrEqual(one) {
		return pkgerrors.New(pkgerrors.CodeValidation, "tax rate must be in [0, 1)").
			WithDetails(map[string]any{"tax_rate": st.TaxRate.String()})
	}
	if st.RoundingStep.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "rounding step must not be negative").
			WithDetails(map[string]any{"rounding_step": st.RoundingStep.String()})
	}
	if st.Currency.Decimals < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "currency decimals must not be negative")
	}
	return nil
}
