package handler

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"pos-admin-api/internal/kv"
	"pos-admin-api/pkg/response"
)

// readinessProbeKey is read (never written) to check the store answers.
const readinessProbeKey = "__ready"

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	service   string
	version   string
	store     kv.Store
	startTime time.Time
}

// New creates a new handler. store may be nil.
func New(service, version string, store kv.Store) *Handler {
	return &Handler{
		service:   service,
		version:   version,
		store:     store,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
	response.OK(w, resp)
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (h *Handler) checkStore(ctx context.Context) string {
	if h.store == nil {
		return "not_configured"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, err := h.store.Get(ctx, readinessProbeKey)
	if err != nil && !errors.Is(err, kv.ErrKeyNotFound) {
		return "error"
	}
	return "ok"
}

// Ready handles GET /api/v1/ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := []Check{
		{Name: "api", Status: "ok"},
		{Name: "store", Status: h.checkStore(r.Context())},
	}

	allReady := true
	for _, check := range checks {
		if check.Status == "error" {
			allReady = false
			break
		}
	}

	resp := ReadyResponse{
		Ready:     allReady,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	if !allReady {
		response.JSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	response.OK(w, resp)
}

// StatusResponse represents the unified status response for monitoring.
type StatusResponse struct {
	Service       string  `json:"service"`
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	MemoryMB      float64 `json:"memory_mb"`
}

// Status handles GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024

	resp := StatusResponse{
		Service:       h.service,
		Status:        "ok",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		MemoryMB:      float64(int(memoryMB*100)) / 100,
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.OK(w, resp)
}
