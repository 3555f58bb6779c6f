// Package httpapi exposes the meter over HTTP and websockets.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// RouterConfig holds all dependencies needed to build the router.
type RouterConfig struct {
	Meter Evaluator
	// Logger receives websocket lifecycle lines. Request lines go through
	// chi's middleware.Logger unless Quiet is set.
	Logger         types.DebugLogger
	Quiet          bool
	AllowedOrigins []string
}

// NewRouter creates the chi router with all routes mounted.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if !cfg.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	health := &HealthHandler{Dict: cfg.Meter.Dictionary()}
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	eval := &EvaluateHandler{Meter: cfg.Meter}
	ws := NewWSHandler(cfg.Meter, cfg.Logger, cfg.AllowedOrigins)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/evaluate", eval.Evaluate)
		r.Get("/ws", ws.Serve)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, r, http.StatusNotFound, "not_found", "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}
