package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/api/responses"
	"github.com/angelmondragon/packfinderz-pos/api/validators"
	"github.com/angelmondragon/packfinderz-pos/internal/settings"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// Recalculator refreshes derived totals after settings change.
type Recalculator interface {
	Recalculate()
}

type settingsRequest struct {
	TaxRate      *decimal.Decimal    `json:"tax_rate" validate:"omitempty,gte=0,lt=1"`
	TaxIncluded  *bool               `json:"tax_included"`
	RoundingStep *decimal.Decimal    `json:"rounding_step" validate:"omitempty,gte=0"`
	Currency     *types.Currency     `json:"currency"`
	Store        *types.StoreProfile `json:"store"`
}

func SettingsGet(svc settings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Snapshot())
	}
}

// SettingsUpdate applies a partial change and recalculates the open cart.
func SettingsUpdate(svc settings.Service, cart Recalculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body settingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), settings.UpdateInput{
			TaxRate:      body.TaxRate,
			TaxIncluded:  body.TaxIncluded,
			RoundingStep: body.RoundingStep,
			Currency:     body.Currency,
			Store:        body.Store,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if cart != nil {
			cart.Recalculate()
		}
		responses.WriteSuccess(w, updated)
	}
}

func SettingsReset(svc settings.Service, cart Recalculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defaults, err := svc.Reset(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if cart != nil {
			cart.Recalculate()
		}
		responses.WriteSuccess(w, defaults)
	}
}
