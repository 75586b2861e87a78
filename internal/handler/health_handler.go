// Package handler holds the operational HTTP endpoints of the ingestion service.
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/svebrant/product-api-assignment/internal/infrastructure/database"
)

// TimeFormat is the time format used in responses (RFC3339).
const TimeFormat = time.RFC3339

const pingTimeout = 2 * time.Second

// ActiveJobLister reports the jobs this process is currently running.
type ActiveJobLister interface {
	ActiveJobs() []string
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	checks  map[string]database.Pinger
	jobs    ActiveJobLister
	version string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler probing every store in checks.
// jobs may be nil.
func NewHealthHandler(checks map[string]database.Pinger, jobs ActiveJobLister, version string) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		jobs:    jobs,
		version: version,
		now:     time.Now,
	}
}

// HealthResponse represents the response for health check endpoints.
type HealthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version,omitempty"`
	Time       string            `json:"time"`
	Services   map[string]string `json:"services,omitempty"`
	ActiveJobs []string          `json:"active_jobs"`
}

// Health handles GET /health - comprehensive health check.
func (h *HealthHandler) Health(c *gin.Context) {
	services, healthy := h.probe(c.Request.Context())

	resp := HealthResponse{
		Status:     "healthy",
		Version:    h.version,
		Time:       h.now().UTC().Format(TimeFormat),
		Services:   services,
		ActiveJobs: []string{},
	}
	if h.jobs != nil {
		if active := h.jobs.ActiveJobs(); active != nil {
			resp.ActiveJobs = active
		}
	}

	if !healthy {
		resp.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ready handles GET /ready - readiness probe for Kubernetes.
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, healthy := h.probe(c.Request.Context()); !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Live handles GET /live - liveness probe for Kubernetes.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *HealthHandler) probe(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	services := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			services[name] = "unhealthy"
			healthy = false
			continue
		}
		services[name] = "healthy"
	}
	return services, healthy
}
