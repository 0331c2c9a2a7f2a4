package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ysonawan/duebook/internal/adapter/http/handler"
	"github.com/ysonawan/duebook/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler   *handler.LedgerHandler
	ReportHandler   *handler.ReportHandler
	CustomerHandler *handler.CustomerHandler
	ShopHandler     *handler.ShopHandler
	AuditHandler    *handler.AuditHandler
	HealthHandler   *handler.HealthHandler
	RateLimiter     *middleware.RateLimiter
	Logger          zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity)

		// Ledger entries
		r.Route("/ledger", func(r chi.Router) {
			r.Post("/", cfg.LedgerHandler.Post)
			r.Get("/{id}", cfg.LedgerHandler.Get)
			r.Post("/{id}/reverse", cfg.LedgerHandler.Reverse)
		})

		// Shops and their views; shop ID "0" spans all shops
		r.Route("/shops", func(r chi.Router) {
			r.Post("/", cfg.ShopHandler.Create)

			r.Route("/{shopID}", func(r chi.Router) {
				r.Get("/", cfg.ShopHandler.Get)
				r.Get("/ledger", cfg.LedgerHandler.ListByShop)
				r.Get("/ledger/summary", cfg.ReportHandler.Summary)
				r.Get("/ledger/trend", cfg.ReportHandler.Trend)
				r.Get("/dashboard", cfg.ReportHandler.Dashboard)
				r.Get("/customers", cfg.CustomerHandler.ListByShop)
			})
		})

		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", cfg.CustomerHandler.Create)
			r.Get("/{id}", cfg.CustomerHandler.Get)
			r.Patch("/{id}/status", cfg.CustomerHandler.SetStatus)
		})

		// Audit trail
		r.Get("/audit/{entityType}/{entityID}", cfg.AuditHandler.GetByEntity)
	})

	return r
}
