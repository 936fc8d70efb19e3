package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/api/responses"
	"github.com/angelmondragon/packfinderz-pos/api/validators"
	"github.com/angelmondragon/packfinderz-pos/internal/catalog"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

const maxQueryLen = 64

type itemRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name" validate:"required"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	TaxIncluded bool            `json:"tax_included"`
	StockQty    *int            `json:"stock_qty" validate:"omitempty,gte=0"`
}

type customerCreateRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
}

// CatalogItems searches by ?q= (name, sku or barcode), ?brand= and ?category=.
func CatalogItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.SearchItems(r.Context(), catalog.ItemFilter{
			Term:     validators.QueryString(r, "q", maxQueryLen),
			Brand:    validators.QueryString(r, "brand", maxQueryLen),
			Category: validators.QueryString(r, "category", maxQueryLen),
			Limit:    limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func CatalogUpsertItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body itemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.UpsertItem(r.Context(), types.Item{
			SKU:         body.SKU,
			Barcode:     body.Barcode,
			Name:        validators.SanitizeString(body.Name, maxNameLen),
			Brand:       body.Brand,
			Category:    body.Category,
			Price:       body.Price,
			TaxIncluded: body.TaxIncluded,
			StockQty:    body.StockQty,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func CustomersList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := svc.ListCustomers(r.Context(), validators.QueryString(r, "q", maxQueryLen))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customers)
	}
}

func CustomersCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body customerCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := svc.CreateCustomer(r.Context(), catalog.CreateCustomerInput{
			ID:      body.ID,
			Name:    validators.SanitizeString(body.Name, maxNameLen),
			Phone:   body.Phone,
			TaxID:   body.TaxID,
			Address: body.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}
