// Package handlers contains the preview server's HTTP handlers.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"git.home.luguber.info/inful/designpreview/internal/server/responses"
	"git.home.luguber.info/inful/designpreview/internal/version"
)

// MonitoringHandlers serves liveness endpoints.
type MonitoringHandlers struct {
	startTime time.Time
}

// NewMonitoringHandlers creates monitoring handlers. Uptime is measured from this call.
func NewMonitoringHandlers() *MonitoringHandlers {
	return &MonitoringHandlers{startTime: time.Now()}
}

// HandleHealthCheck handles GET /healthz.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, responses.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
