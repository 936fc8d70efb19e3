package middleware

import (
	"net/http"

	"github.com/angelmondragon/packfinderz-pos/internal/auth"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
)

// Cashier stamps every request with the cashier currently operating the till.
func Cashier(identity auth.CashierIdentity, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity == nil {
				next.ServeHTTP(w, r)
				return
			}
			cashierID := identity.CashierID()
			ctx := WithCashierID(r.Context(), cashierID)
			if logg != nil {
				ctx = logg.WithCashierID(ctx, cashierID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
