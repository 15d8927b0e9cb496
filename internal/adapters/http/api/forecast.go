// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/scoresim/scoresim/internal/domain/forecast"
	"github.com/scoresim/scoresim/internal/domain/model"
	"github.com/scoresim/scoresim/internal/domain/types"
)

// ForecastDependencies defines the interface for forecast dependencies.
type ForecastDependencies interface {
	Forecast(ctx context.Context, f model.Factors, months, rate int) (types.Forecast, error)
}

// ForecastHandler handles forecast requests.
type ForecastHandler struct {
	deps ForecastDependencies
}

// NewForecastHandler creates a new forecast handler.
func NewForecastHandler(deps ForecastDependencies) *ForecastHandler {
	return &ForecastHandler{deps: deps}
}

// HandlePostForecast handles POST /forecast requests.
func (h *ForecastHandler) HandlePostForecast(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_forecast"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	fc, err := h.deps.Forecast(r.Context(), req.Factors.factors(), *req.Months, *req.ImprovementRate)
	if err != nil {
		// The projector rejects out-of-range controls; everything else is internal.
		if errors.Is(err, forecast.ErrMonthsOutOfRange) || errors.Is(err, forecast.ErrRateOutOfRange) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, fc)
}
