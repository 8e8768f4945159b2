// Package api provides HTTP API server components.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindcore/mindcore/config"
	"github.com/mindcore/mindcore/pkg/api/handlers"
	"github.com/mindcore/mindcore/pkg/api/middleware"
	"github.com/mindcore/mindcore/pkg/logger"
)

// Handlers holds all HTTP handlers.
type Handlers struct {
	// State handles state lifecycle and cognition endpoints
	State *handlers.StateHandler

	// Health handles health check endpoints
	Health *handlers.HealthHandler

	// WebSocket handles the event stream endpoint
	WebSocket *handlers.WebSocketHandler

	// Metrics is the optional metrics recorder
	Metrics middleware.MetricsRecorder
}

// NewRouter creates a chi router with middleware and routes.
func NewRouter(cfg *config.Config, log logger.Logger, handlers *Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))

	if handlers.Metrics != nil {
		r.Use(middleware.Metrics(handlers.Metrics))
	}
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(middleware.DefaultTracingOptions()))
	}
	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.Server.RateLimit.RequestsPerSecond,
			cfg.Server.RateLimit.Burst,
		)
		r.Use(middleware.RateLimit(limiter))
	}

	r.Use(middleware.CORS(&cfg.Server.CORS))
	r.Use(middleware.Timeout(cfg.Server.HTTP.RequestTimeout))

	RegisterRoutes(r, cfg, handlers)

	return r
}

// RegisterRoutes registers all API routes.
func RegisterRoutes(r chi.Router, cfg *config.Config, handlers *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		if handlers.State != nil {
			r.Route("/states", func(r chi.Router) {
				r.Post("/", handlers.State.CreateState)
				r.Get("/", handlers.State.ListStates)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", handlers.State.GetState)
					r.Delete("/", handlers.State.DeleteState)
					r.Post("/reset", handlers.State.ResetState)
					r.Post("/update", handlers.State.UpdateState)
					r.Post("/query", handlers.State.QueryState)
					r.Get("/plasticity", handlers.State.GetPlasticity)
					r.Get("/temporal", handlers.State.GetTemporal)
					r.Get("/calibration", handlers.State.GetCalibration)
					r.Post("/save", handlers.State.SaveState)
					r.Post("/load", handlers.State.LoadState)
				})
			})
		}
	})

	// Health check routes (not versioned)
	if handlers.Health != nil {
		r.Get("/health", handlers.Health.Health)
		r.Get("/ready", handlers.Health.Ready)
		r.Get("/status", handlers.Health.Status)
	}

	// Websocket event stream
	if handlers.WebSocket != nil && cfg.Server.WebSocket.Enabled {
		r.Get("/ws/events", handlers.WebSocket.ServeHTTP)
	}
}
