package httpapi

import (
	"net/http"
)

// ReadyChecker reports whether the dictionary load has finished.
type ReadyChecker interface {
	IsReady() bool
	Len() int
}

// HealthHandler provides HTTP handlers for health check endpoints.
type HealthHandler struct {
	Dict ReadyChecker
}

// Healthz is a liveness probe. Returns 200 if the process is running.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz is a readiness probe. Returns 503 until the dictionary load has
// finished, successfully or not.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.Dict == nil || !h.Dict.IsReady() {
		RespondJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}

	RespondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":          "ready",
		"dictionary_size": h.Dict.Len(),
	})
}
