package handlers

import (
	"net/http"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/internal/server/response"
	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/logging"
)

// ResolveUnitRequest is the body of POST /tools/resolve_unit.
type ResolveUnitRequest struct {
	Query string `json:"query"`
}

// HandleResolveUnit handles POST /api/v1/tools/resolve_unit.
// The resolution result is returned as data even when no unit matched;
// callers read its error field and fall back to the raw query.
func (h *Handlers) HandleResolveUnit(w http.ResponseWriter, r *http.Request) {
	var req ResolveUnitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	result := h.unitmap.Resolve(req.Query)
	ctx := logging.WithOperation(logging.WithQuery(r.Context(), req.Query), "resolve_unit")
	logging.FromContext(ctx).Debug().
		Str("method", string(result.Method)).
		Int("score", result.Score).
		Msg("Resolved unit")

	response.OK(w, result)
}

// HandleStaffSearch handles POST /api/v1/tools/staff_search.
// Directory results are cached by their encoded parameters; the query and
// its faculty resolution are always those of the current request.
func (h *Handlers) HandleStaffSearch(w http.ResponseWriter, r *http.Request) {
	var q directory.Query
	if err := decodeJSON(w, r, &q); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	ctx := logging.WithOperation(r.Context(), "staff_search")
	logger := logging.FromContext(ctx)
	params, resolution := h.unitmap.StaffParams(q)
	key := params.Encode()

	result, ok := h.cache.Get(key)
	if ok {
		logger.Debug().Str("params", key).Msg("Staff search served from cache")
	} else {
		var err error
		result, err = h.unitmap.SearchDirectory(ctx, params)
		if err != nil {
			logger.Warn().Err(err).Str("params", key).Msg("Staff search failed")
			response.ErrorFromType(w, err)
			return
		}
		h.cache.Set(key, result)
	}

	response.OK(w, unitmap.NewStaffSearch(q, params, resolution, result))
}
