package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/unitmap/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "unitmap-api",
		"version": h.version,
	})
}

// HandleReady handles GET /api/v1/ready.
// The server is ready once the catalog holds at least one unit.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if h.unitmap == nil || h.unitmap.Catalog().Len() == 0 {
		response.ServiceUnavailable(w, "Unit catalog not loaded")
		return
	}

	catalog := h.unitmap.Catalog()
	report := catalog.Report()
	stats := h.cache.GetStats()
	response.OK(w, map[string]any{
		"status": "ready",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
		"catalog": map[string]any{
			"source":  report.Source,
			"units":   catalog.Len(),
			"keys":    report.Keys,
			"skipped": report.SkippedCount(),
		},
		"cache": map[string]any{
			"items":  stats.ItemCount,
			"hits":   stats.Hits,
			"misses": stats.Misses,
		},
	})
}
