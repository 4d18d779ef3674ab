package handlers

import (
	"net/http"
	"time"

	"github.com/hongminglow/pilot-auth/internal/http/respond"
)

// HealthHandler answers the health check with 204 and reports uptime in a
// header, since a 204 carries no body.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("X-Uptime", time.Since(h.startedAt).Truncate(time.Second).String())
	respond.NoContent(w)
}
