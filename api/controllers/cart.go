package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/api/responses"
	"github.com/angelmondragon/packfinderz-pos/api/validators"
	cartsvc "github.com/angelmondragon/packfinderz-pos/internal/cart"
	"github.com/angelmondragon/packfinderz-pos/internal/catalog"
	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

const maxNameLen = 120

type barcodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type customItemRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

type qtyRequest struct {
	Qty float64 `json:"qty"`
}

type discountRequest struct {
	Type  string          `json:"type" validate:"required,oneof=PERCENT AMOUNT"`
	Value decimal.Decimal `json:"value"`
}

func (d discountRequest) toDiscount() *types.Discount {
	return &types.Discount{Kind: enums.DiscountKind(d.Type), Value: d.Value}
}

type customerRequest struct {
	CustomerID string          `json:"customer_id"`
	Customer   *types.Customer `json:"customer"`
}

func CartGet(svc cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.State())
	}
}

func CartClear(svc cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.ClearCart()
		responses.WriteSuccess(w, svc.State())
	}
}

// CartAddByBarcode scans a code into the cart; unknown codes answer 404.
func CartAddByBarcode(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body barcodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.AddItemByBarcode(r.Context(), body.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not found").
				WithDetails(map[string]string{"code": body.Code}))
			return
		}
		responses.WriteSuccess(w, svc.State())
	}
}

func CartAddCustom(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body customItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		line := svc.AddCustomItem(validators.SanitizeString(body.Name, maxNameLen), body.Price)
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"line": line,
			"cart": svc.State(),
		})
	}
}

// CartUpdateQty accepts any number; it is coerced to a whole quantity of at least one.
func CartUpdateQty(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body qtyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lineID := chi.URLParam(r, "lineId")
		if !svc.UpdateQty(lineID, cartsvc.CoerceQty(body.Qty)) {
			responses.WriteError(r.Context(), logg, w, lineNotFound(lineID))
			return
		}
		responses.WriteSuccess(w, svc.State())
	}
}

func CartUpdateLineDiscount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body discountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lineID := chi.URLParam(r, "lineId")
		if !svc.UpdateLineDiscount(lineID, body.toDiscount()) {
			responses.WriteError(r.Context(), logg, w, lineNotFound(lineID))
			return
		}
		responses.WriteSuccess(w, svc.State())
	}
}

func CartClearLineDiscount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID := chi.URLParam(r, "lineId")
		if !svc.UpdateLineDiscount(lineID, nil) {
			responses.WriteError(r.Context(), logg, w, lineNotFound(lineID))
			return
		}
		responses.WriteSuccess(w, svc.State())
	}
}

func CartRemoveLine(svc cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.RemoveLine(chi.URLParam(r, "lineId"))
		responses.WriteSuccess(w, svc.State())
	}
}

func CartSetOrderDiscount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body discountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		svc.SetOrderDiscount(body.toDiscount())
		responses.WriteSuccess(w, svc.State())
	}
}

func CartClearOrderDiscount(svc cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.SetOrderDiscount(nil)
		responses.WriteSuccess(w, svc.State())
	}
}

// CartAttachCustomer attaches a customer by id, or an inline customer, or
// detaches when the body names neither.
func CartAttachCustomer(svc cartsvc.Service, customers catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body customerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		switch {
		case strings.TrimSpace(body.CustomerID) != "":
			customer, err := customers.GetCustomer(r.Context(), body.CustomerID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			svc.AttachCustomer(&customer)
		case body.Customer != nil:
			if strings.TrimSpace(body.Customer.Name) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required"))
				return
			}
			svc.AttachCustomer(body.Customer)
		default:
			svc.AttachCustomer(nil)
		}
		responses.WriteSuccess(w, svc.State())
	}
}

func CartHold(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.HoldSale(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"held": true})
	}
}

// CartResume swaps in the held cart; 404 when nothing is held.
func CartResume(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resumed, err := svc.ResumeSaleIfAny(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !resumed {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no held sale"))
			return
		}
		responses.WriteSuccess(w, svc.State())
	}
}

func CartHeld(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		held, err := svc.HasHeldSale(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"held": held})
	}
}

func lineNotFound(id string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "line not found").WithDetails(map[string]string{"line_id": id})
}
