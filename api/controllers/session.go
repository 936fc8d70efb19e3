package controllers

import (
	"net/http"

	"github.com/angelmondragon/packfinderz-pos/api/responses"
	"github.com/angelmondragon/packfinderz-pos/api/validators"
	"github.com/angelmondragon/packfinderz-pos/internal/auth"
	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

type loginRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"omitempty,oneof=CASHIER SUPERVISOR ADMIN"`
}

type sessionResponse struct {
	User      *types.User `json:"user"`
	CashierID string      `json:"cashier_id"`
}

func SessionGet(svc auth.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := sessionResponse{CashierID: svc.CashierID()}
		if user, ok := svc.Current(); ok {
			out.User = &user
		}
		responses.WriteSuccess(w, out)
	}
}

func SessionLogin(svc auth.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Login(r.Context(), types.User{
			ID:   body.ID,
			Name: validators.SanitizeString(body.Name, maxNameLen),
			Role: enums.UserRole(body.Role),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sessionResponse{User: &user, CashierID: svc.CashierID()})
	}
}

func SessionLogout(svc auth.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sessionResponse{CashierID: svc.CashierID()})
	}
}
