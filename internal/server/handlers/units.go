package handlers

import (
	"net/http"
	"strconv"

	"github.com/agentstation/unitmap/internal/matcher"
	"github.com/agentstation/unitmap/internal/server/response"
	"github.com/agentstation/unitmap/pkg/resolver"
)

// HandleListUnits handles GET /api/v1/units with optional type and
// name-pattern filters.
func (h *Handlers) HandleListUnits(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	records, err := matcher.FilterUnits(query.Get("match"), h.unitmap.Catalog().Filter(query.Get("type")))
	if err != nil {
		response.BadRequest(w, "Invalid match pattern", err.Error())
		return
	}
	response.OK(w, map[string]any{
		"units": records,
		"count": len(records),
		"types": h.unitmap.Catalog().Types(),
	})
}

// HandleSuggestUnits handles GET /api/v1/units/suggest?q=&limit=.
func (h *Handlers) HandleSuggestUnits(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := query.Get("q")
	if q == "" {
		response.BadRequest(w, "Missing query parameter", "q is required")
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.BadRequest(w, "Invalid limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	suggestions := h.unitmap.Suggest(q, limit)
	if suggestions == nil {
		suggestions = []resolver.Suggestion{}
	}
	response.OK(w, map[string]any{
		"query":       q,
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
