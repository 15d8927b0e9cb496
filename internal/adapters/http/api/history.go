// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/scoresim/scoresim/internal/domain/types"
)

// handleSaveHistory serves POST /sessions/{id}/history. The current factor
// set is evaluated and the resulting snapshot appended to the session.
func (h *SessionsHandler) handleSaveHistory(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.save_history"
	var req saveHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.Factors.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	entry, err := h.deps.SaveHistory(r.Context(), id, req.Factors.factors())
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// handleGetHistory serves GET /sessions/{id}/history in save order.
func (h *SessionsHandler) handleGetHistory(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.get_history"
	entries, err := h.deps.History(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	// An empty history is a valid state, not an error; keep the JSON an array.
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
