package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/catalog"
	"Storefront/internal/config"
	"Storefront/internal/order"
	"Storefront/internal/review"
	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

const version = "1.0.0"

// Deps carries everything the HTTP assembly needs.
type Deps struct {
	Store    *store.Store
	JWT      *auth.TokenMaker
	Cfg      *config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry
}

// NewHandler assembles the full API under /api plus the operational
// endpoints.
func NewHandler(d Deps) http.Handler {
	start := time.Now()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(d.Log))

	if d.Cfg.Metrics.Enabled && d.Registry != nil {
		m := kit.NewMetrics(d.Registry)
		r.Use(m.Middleware("storefront", kit.ChiRoutePatternOrPath))
		r.With(kit.MetricsAuth(d.Cfg.Metrics.Token)).
			Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	authSrv := &auth.Server{Store: d.Store, JWT: d.JWT, Log: d.Log}
	catalogSrv := &catalog.Server{Store: d.Store, JWT: d.JWT, Log: d.Log}
	orderSrv := &order.Server{Store: d.Store, Log: d.Log}
	reviewSrv := &review.Server{Store: d.Store, JWT: d.JWT, Log: d.Log}

	loginLimiter := kit.NewIPRateLimiter(d.Cfg.RateLimit.Login, d.Cfg.RateLimit.Window)
	registerLimiter := kit.NewIPRateLimiter(d.Cfg.RateLimit.Register, d.Cfg.RateLimit.Window)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			kit.WriteSuccess(w, http.StatusOK, kit.Envelope{
				"status":    "OK",
				"version":   version,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"uptime":    time.Since(start).String(),
			})
		})

		api.Mount("/products", catalogSrv.ProductRoutes())
		api.Mount("/categories", catalogSrv.CategoryRoutes())
		api.Mount("/users", authSrv.Routes(loginLimiter, registerLimiter))
		api.With(auth.RequireAuth(d.JWT)).Mount("/orders", orderSrv.Routes())
		api.Mount("/reviews", reviewSrv.Routes())
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusNotFound, "Route not found", "", nil)
	})

	return r
}
