package api

import (
	"net/http"

	"github.com/okian/authapi/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthDependencies exposes what /healthz reports.
type HealthDependencies interface {
	Environment() string
	DatabaseNames() []string
}

type healthResponse struct {
	Status    string   `json:"status"`
	Env       string   `json:"env"`
	Databases []string `json:"databases"`
}

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /healthz. It reports process liveness only and
// does not contact the database.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Env:       h.deps.Environment(),
		Databases: h.deps.DatabaseNames(),
	})
}

// MetricsHandler serves the service registry in Prometheus text format.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
