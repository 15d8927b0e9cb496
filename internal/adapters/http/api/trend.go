// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/scoresim/scoresim/internal/domain/types"
)

// handleGetTrend serves GET /sessions/{id}/trend: one point per saved entry,
// indexed by save order, for the history line chart.
func (h *SessionsHandler) handleGetTrend(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.get_trend"
	points, err := h.deps.Trend(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	if points == nil {
		points = []types.TrendPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}
