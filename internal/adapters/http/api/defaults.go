// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/scoresim/scoresim/internal/domain/types"
)

// DefaultsDependencies defines the interface for defaults lookup.
type DefaultsDependencies interface {
	Defaults(ctx context.Context) types.Defaults
}

// DefaultsHandler handles dashboard defaults requests.
type DefaultsHandler struct {
	deps DefaultsDependencies
}

// NewDefaultsHandler creates a new defaults handler.
func NewDefaultsHandler(deps DefaultsDependencies) *DefaultsHandler {
	return &DefaultsHandler{deps: deps}
}

// HandleGetDefaults handles GET /defaults requests. The payload carries
// everything the dashboard needs to render its controls: starting factor
// values, scoring weights, axis labels and control ranges.
func (h *DefaultsHandler) HandleGetDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Defaults(r.Context()))
}
