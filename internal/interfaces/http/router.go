// Package http wires the depiction API's route tree and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/prometheus"
	"github.com/wikimol/wikimolgen/internal/interfaces/http/handlers"
	"github.com/wikimol/wikimolgen/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies required
// to build the complete route tree. Nil handlers leave their routes
// unmounted, nil middleware is skipped.
type RouterConfig struct {
	RenderHandler   *handlers.RenderHandler
	CompoundHandler *handlers.CompoundHandler
	HealthHandler   *handlers.HealthHandler

	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector

	CORS    *middleware.CORSConfig    // nil uses the default policy
	Logging *middleware.LoggingConfig // nil uses the default policy
}

// NewRouter builds the HTTP route tree: global middleware, public probe
// endpoints, the metrics scrape, and the /api/v1 resource groups.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	cors := middleware.DefaultCORSConfig()
	if cfg.CORS != nil {
		cors = *cfg.CORS
	}
	r.Use(middleware.CORS(cors))

	if cfg.Logger != nil {
		logCfg := middleware.DefaultLoggingConfig()
		if cfg.Logging != nil {
			logCfg = *cfg.Logging
		}
		r.Use(middleware.RequestLogging(cfg.Logger, logCfg))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.RenderHandler != nil {
			api.Route("/render", func(rr chi.Router) {
				rr.Post("/2d", cfg.RenderHandler.Render2D)
				rr.Post("/3d", cfg.RenderHandler.Render3D)
			})
		}
		if cfg.CompoundHandler != nil {
			api.Route("/compounds/{identifier}", func(cr chi.Router) {
				cr.Get("/", cfg.CompoundHandler.Get)
				cr.Get("/infobox", cfg.CompoundHandler.Infobox)
			})
		}
	})

	return r
}
