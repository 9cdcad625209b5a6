package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ay0711/AI/internal/api/shared"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	version string
	ready   func() bool
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. ready reports whether the
// upstream client is available; it may be nil.
func NewHealthHandler(version string, ready func() bool) *HealthHandler {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &HealthHandler{version: version, ready: ready, now: time.Now}
}

// Health handles GET /health. The server is healthy even in degraded mode.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	aiService := "available"
	if !h.ready() {
		aiService = "unavailable"
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "OK",
		Message:   "AI Backend Server is running",
		Timestamp: h.now().UTC(),
		Version:   h.version,
		AIService: aiService,
	})
}

// NotFound answers unknown routes and unsupported methods.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound,
		TitleRouteNotFound, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.RequestURI()))
}
