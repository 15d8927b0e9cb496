// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/scoresim/scoresim/internal/domain/model"
	"github.com/scoresim/scoresim/internal/domain/types"
)

// SessionDependencies defines the interface for session and history operations.
type SessionDependencies interface {
	CreateSession(ctx context.Context) (types.SessionInfo, error)
	Session(ctx context.Context, id string) (types.SessionInfo, error)
	SaveHistory(ctx context.Context, id string, f model.Factors) (types.HistoryEntry, error)
	History(ctx context.Context, id string) ([]types.HistoryEntry, error)
	Trend(ctx context.Context, id string) ([]types.TrendPoint, error)
}

// SessionsHandler handles session and history requests.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandleCreateSession handles POST /sessions requests.
func (h *SessionsHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	sess, err := h.deps.CreateSession(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// HandleSessionTree routes requests under /sessions/{id}:
//
//	GET  /sessions/{id}          -> session summary
//	POST /sessions/{id}/history  -> save a history entry
//	GET  /sessions/{id}/history  -> list history entries
//	GET  /sessions/{id}/trend    -> score-over-save-order points
func (h *SessionsHandler) HandleSessionTree(w http.ResponseWriter, r *http.Request) {
	// Extract path parameters after /sessions/
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	id, rest, _ := strings.Cut(path, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch {
	case rest == "" && r.Method == http.MethodGet:
		h.handleGetSession(w, r, id)
	case rest == "history" && r.Method == http.MethodPost:
		h.handleSaveHistory(w, r, id)
	case rest == "history" && r.Method == http.MethodGet:
		h.handleGetHistory(w, r, id)
	case rest == "trend" && r.Method == http.MethodGet:
		h.handleGetTrend(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// handleGetSession serves GET /sessions/{id}.
func (h *SessionsHandler) handleGetSession(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.get_session"
	sess, err := h.deps.Session(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
