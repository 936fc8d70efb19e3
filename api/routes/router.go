package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/packfinderz-pos/api/controllers"
	"github.com/angelmondragon/packfinderz-pos/api/middleware"
	"github.com/angelmondragon/packfinderz-pos/internal/auth"
	"github.com/angelmondragon/packfinderz-pos/internal/cart"
	"github.com/angelmondragon/packfinderz-pos/internal/catalog"
	"github.com/angelmondragon/packfinderz-pos/internal/sales"
	"github.com/angelmondragon/packfinderz-pos/internal/settings"
	"github.com/angelmondragon/packfinderz-pos/pkg/config"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
)

// Deps is everything the router hands to controllers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Cart     cart.Service
	Catalog  catalog.Service
	Sales    sales.Service
	Settings settings.Service
	Session  auth.Session
	Gatherer prometheus.Gatherer
	Ready    []controllers.ReadinessCheck
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Ready...))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Cashier(deps.Session, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart))
			r.Delete("/", controllers.CartClear(deps.Cart))
			r.Post("/items/barcode", controllers.CartAddByBarcode(deps.Cart, logg))
			r.Post("/items/custom", controllers.CartAddCustom(deps.Cart, logg))
			r.Patch("/lines/{lineId}/qty", controllers.CartUpdateQty(deps.Cart, logg))
			r.Put("/lines/{lineId}/discount", controllers.CartUpdateLineDiscount(deps.Cart, logg))
			r.Delete("/lines/{lineId}/discount", controllers.CartClearLineDiscount(deps.Cart, logg))
			r.Delete("/lines/{lineId}", controllers.CartRemoveLine(deps.Cart))
			r.Put("/discount", controllers.CartSetOrderDiscount(deps.Cart, logg))
			r.Delete("/discount", controllers.CartClearOrderDiscount(deps.Cart))
			r.Put("/customer", controllers.CartAttachCustomer(deps.Cart, deps.Catalog, logg))
			r.Get("/held", controllers.CartHeld(deps.Cart, logg))
			r.Post("/hold", controllers.CartHold(deps.Cart, logg))
			r.Post("/resume", controllers.CartResume(deps.Cart, logg))
			r.Post("/checkout", controllers.CartCheckout(deps.Cart, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SalesList(deps.Sales, logg))
			r.Get("/history", controllers.SalesHistory(deps.Cart, logg))
			r.Get("/{number}", controllers.SalesByNumber(deps.Sales, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsGet(deps.Settings))
			r.Put("/", controllers.SettingsUpdate(deps.Settings, deps.Cart, logg))
			r.Post("/reset", controllers.SettingsReset(deps.Settings, deps.Cart, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/items", controllers.CatalogItems(deps.Catalog, logg))
			r.Post("/items", controllers.CatalogUpsertItem(deps.Catalog, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomersList(deps.Catalog, logg))
			r.Post("/", controllers.CustomersCreate(deps.Catalog, logg))
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionGet(deps.Session))
			r.Post("/", controllers.SessionLogin(deps.Session, logg))
			r.Delete("/", controllers.SessionLogout(deps.Session, logg))
		})
	})

	return r
}
