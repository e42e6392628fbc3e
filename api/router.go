package api

import (
	"net/http"
	"storefront_server/api/dashboard"
	"storefront_server/api/health"
	"storefront_server/api/middleware"
	"storefront_server/api/shop"
	"storefront_server/config"
	"storefront_server/services"
	"storefront_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

// App builds the HTTP handler. counter may be nil, which disables rate limiting.
func App(cfg *structs.Config, sm *services.ServiceManager, counter middleware.RateCounter) chi.Router {
	r := chi.NewRouter()

	// create loggers
	mwLogger := config.NewLogger(false)
	standardLogger := config.NewLogger(true)

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, counter)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.SetupLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware)

	// CORS (must be before auth)
	r.Use(mw.SetupCORS().Handler)
	r.Use(mw.RateLimitMiddleware())

	// Register all routes
	NewRouterManager(
		shop.NewShopRoutesManager(standardLogger, sm.StorefrontService),
		dashboard.NewDashboardRoutesManager(standardLogger, cfg.Storage, sm, mw),
		health.NewHealthRoutesManager(sm.HealthService),
	).RegisterRoutes(r)

	// Uploaded files, read-only
	files := http.StripPrefix("/storage/", http.FileServer(http.Dir(cfg.Storage.Root)))
	r.Get("/storage/*", files.ServeHTTP)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
