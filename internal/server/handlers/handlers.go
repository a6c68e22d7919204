// Package handlers provides HTTP request handlers for the unitmap API.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/internal/server/cache"
	"github.com/agentstation/unitmap/pkg/constants"
	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/errors"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	unitmap   unitmap.Unitmap
	cache     *cache.Cache[*directory.SearchResult]
	logger    *zerolog.Logger
	version   string
	startTime time.Time
}

// New creates a new Handlers instance.
func New(
	um unitmap.Unitmap,
	cache *cache.Cache[*directory.SearchResult],
	logger *zerolog.Logger,
	version string,
	startTime time.Time,
) *Handlers {
	return &Handlers{
		unitmap:   um,
		cache:     cache,
		logger:    logger,
		version:   version,
		startTime: startTime,
	}
}

// decodeJSON reads a bounded JSON body into v. An empty body is invalid.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, constants.MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if err == io.EOF {
			return errors.NewValidationError("body", nil, "request body is empty")
		}
		return errors.NewValidationError("body", nil, "invalid JSON: "+err.Error())
	}
	return nil
}
