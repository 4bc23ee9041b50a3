// Package responses defines response payloads used by the preview server handlers.
package responses

import "time"

// HealthResponse represents the health check payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}
