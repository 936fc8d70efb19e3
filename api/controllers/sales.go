package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/packfinderz-pos/api/responses"
	"github.com/angelmondragon/packfinderz-pos/api/validators"
	cartsvc "github.com/angelmondragon/packfinderz-pos/internal/cart"
	"github.com/angelmondragon/packfinderz-pos/internal/sales"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/pagination"
)

// SalesHistory lists the sales finalized on this till, oldest first.
// ?reload=true re-reads the persisted history first.
func SalesHistory(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reload, err := validators.ParseQueryBool(r, "reload")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if reload {
			if err := svc.LoadHistory(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, svc.History())
	}
}

// SalesList pages through every recorded sale, newest first.
func SalesList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.ListSales(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func SalesByNumber(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sale, err := svc.FindSaleByNumber(r.Context(), chi.URLParam(r, "number"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}
