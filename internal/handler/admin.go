package handler

import (
	"net/http"
	"runtime"
	"time"

	"pos-admin-api/internal/repository"
	"pos-admin-api/internal/service"
	"pos-admin-api/pkg/response"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	selector  *service.TransportSelector
	remote    *repository.RemoteRecordRepository
	seeder    *service.Seeder
	storeType string // memory, redis, sqlite, mysql or postgres
	startTime time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	selector *service.TransportSelector,
	remote *repository.RemoteRecordRepository,
	seeder *service.Seeder,
	storeType string,
) *AdminHandler {
	return &AdminHandler{
		selector:  selector,
		remote:    remote,
		seeder:    seeder,
		storeType: storeType,
		startTime: time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]interface{})

	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)

	dataLayer := map[string]interface{}{
		"mode":       string(h.selector.Mode()),
		"demoted":    h.selector.Demoted(),
		"store_type": h.storeType,
	}
	if h.remote != nil {
		dataLayer["remote_configured"] = h.remote.IsConfigured(r.Context())
	}
	stats["data_layer"] = dataLayer

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":      float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":        float64(memStats.Sys) / 1024 / 1024,
		"heap_inuse_mb": float64(memStats.HeapInuse) / 1024 / 1024,
		"num_gc":        memStats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	stats["runtime"] = map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
	}

	response.OK(w, stats)
}

// Seed handles POST /api/v1/admin/seed
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.seeder.Seed(r.Context()))
}
