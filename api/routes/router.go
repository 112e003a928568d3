package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/choppi/admin-web/api/controllers"
	"github.com/choppi/admin-web/api/middleware"
	"github.com/choppi/admin-web/internal/backend"
	"github.com/choppi/admin-web/internal/listing"
	"github.com/choppi/admin-web/internal/session"
	"github.com/choppi/admin-web/pkg/config"
	"github.com/choppi/admin-web/pkg/logger"
	"github.com/choppi/admin-web/pkg/metrics"
	"github.com/choppi/admin-web/web"
)

// NewRouter wires every route of the admin frontend: the public login and
// proxy surface, the session-gated pages, and the operational endpoints.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	rnd *web.Renderer,
	sessionManager *session.Manager,
	cache controllers.Pinger,
	proxyMetrics *metrics.ProxyMetrics,
	stores backend.StoresAPI,
	products backend.ProductsAPI,
	storeProducts backend.StoreProductsAPI,
	cartAPI backend.CartAPI,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.NotFound(controllers.NotFound(rnd))

	storeDefs := listing.Defaults{Limit: cfg.Listing.StoresPageSize}
	inventoryDefs := listing.Defaults{Limit: cfg.Listing.InventoryPageSize}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Liveness())
		r.Get("/ready", controllers.Readiness(cache, logg))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Same-origin relay for browser calls; CORS headers are injected on every
	// response, error paths included.
	r.HandleFunc("/api/choppi/*", controllers.Proxy(cfg.Backend, nil, proxyMetrics, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionManager, logg))

		r.Get("/login", controllers.LoginPage(rnd))
		r.Post("/login", controllers.LoginSubmit(sessionManager, rnd, logg))
		r.Post("/logout", controllers.Logout(sessionManager, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(logg))

			r.Get("/", redirectTo("/stores"))
			r.Get("/stores", controllers.StoresPage(stores, storeDefs, rnd, logg))
			r.Get("/stores/{storeID}", controllers.StoreDetailPage(stores, storeProducts, inventoryDefs, rnd, logg))
			r.Post("/stores/{storeID}", controllers.StoreQuote(stores, storeProducts, cartAPI, inventoryDefs, rnd, logg))

			r.Route("/admin", func(r chi.Router) {
				r.Get("/", controllers.AdminPage(stores, products, rnd, logg))
				r.Post("/stores", controllers.CreateStore(stores, rnd, logg))
				r.Post("/stores/{storeID}", controllers.UpdateStore(stores, rnd, logg))
				r.Post("/stores/{storeID}/delete", controllers.DeleteStore(stores, rnd, logg))
				r.Post("/products", controllers.CreateProduct(products, rnd, logg))
				r.Post("/products/{productID}", controllers.UpdateProduct(products, rnd, logg))
				r.Post("/products/{productID}/delete", controllers.DeleteProduct(products, rnd, logg))
			})
		})
	})

	return r
}

func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
