package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/api/responses"
	"github.com/angelmondragon/packfinderz-pos/api/validators"
	cartsvc "github.com/angelmondragon/packfinderz-pos/internal/cart"
	"github.com/angelmondragon/packfinderz-pos/pkg/db/models"
	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/pricing"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

type paymentRequest struct {
	Type   string          `json:"type" validate:"required,oneof=CASH CARD TRANSFER EWALLET"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Ref    string          `json:"ref"`
}

type checkoutRequest struct {
	Payments  []paymentRequest `json:"payments" validate:"required,min=1,dive"`
	ClearCart bool             `json:"clear_cart"`
}

type checkoutResponse struct {
	Sale    models.Sale            `json:"sale"`
	Summary pricing.PaymentSummary `json:"summary"`
}

// CartCheckout records the cart as a paid sale. Empty carts and payments
// short of the grand total are rejected before anything is written.
func CartCheckout(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := svc.State()
		if state.Status == enums.CartStatusEmpty {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty"))
			return
		}

		payments := make([]types.Payment, 0, len(body.Payments))
		for _, p := range body.Payments {
			payments = append(payments, types.Payment{
				Type:   enums.PaymentType(p.Type),
				Amount: p.Amount,
				Ref:    validators.SanitizeString(p.Ref, maxNameLen),
			})
		}

		summary := pricing.SummarizePayments(state.Totals.GrandTotal, payments)
		if !summary.Covered() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "payments do not cover the total").
				WithDetails(summary))
			return
		}

		sale, err := svc.CreateSaleDraftAndFinalize(r.Context(), payments)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.ClearCart {
			svc.ClearCart()
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			Sale:    sale,
			Summary: pricing.SummarizePayments(sale.GrandTotal, sale.Payments),
		})
	}
}
