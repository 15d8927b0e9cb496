// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/scoresim/scoresim/internal/adapters/repository"
	"github.com/scoresim/scoresim/internal/domain/model"
	"github.com/scoresim/scoresim/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Evaluate scores one factor set and assembles the dashboard payload.
	Evaluate(ctx context.Context, f model.Factors) types.Evaluation

	// Forecast projects the factors months ahead at the improvement rate.
	Forecast(ctx context.Context, f model.Factors, months, rate int) (types.Forecast, error)

	// Session and history operations back the save surface.
	CreateSession(ctx context.Context) (types.SessionInfo, error)
	Session(ctx context.Context, id string) (types.SessionInfo, error)
	SaveHistory(ctx context.Context, id string, f model.Factors) (types.HistoryEntry, error)
	History(ctx context.Context, id string) ([]types.HistoryEntry, error)
	Trend(ctx context.Context, id string) ([]types.TrendPoint, error)

	// Defaults reports slider defaults, weights and control ranges.
	Defaults(ctx context.Context) types.Defaults
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	evaluateHandler  *EvaluateHandler
	forecastHandler  *ForecastHandler
	sessionsHandler  *SessionsHandler
	defaultsHandler  *DefaultsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		evaluateHandler:  NewEvaluateHandler(deps),
		forecastHandler:  NewForecastHandler(deps),
		sessionsHandler:  NewSessionsHandler(deps),
		defaultsHandler:  NewDefaultsHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/defaults", MetricsMiddleware(s.defaultsHandler.HandleGetDefaults, "defaults"))
	mux.HandleFunc("/evaluate", MetricsMiddleware(s.evaluateHandler.HandlePostEvaluate, "evaluate"))
	mux.HandleFunc("/forecast", MetricsMiddleware(s.forecastHandler.HandlePostForecast, "forecast"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleCreateSession, "sessions"))
	mux.HandleFunc("/sessions/", MetricsMiddleware(s.sessionsHandler.HandleSessionTree, "sessions"))
}

// factorsPayload mirrors the OpenAPI schema for a factor set. Pointer fields
// keep missing keys distinguishable from legitimate zero values.
type factorsPayload struct {
	PaymentHistory    *int `json:"payment_history"`
	CreditUtilization *int `json:"credit_utilization"`
	LengthOfHistory   *int `json:"length_of_history"`
	CreditMix         *int `json:"credit_mix"`
	NewCredit         *int `json:"new_credit"`
}

func (p factorsPayload) validate() error {
	fields := []struct {
		name  string
		value *int
	}{
		{"payment_history", p.PaymentHistory},
		{"credit_utilization", p.CreditUtilization},
		{"length_of_history", p.LengthOfHistory},
		{"credit_mix", p.CreditMix},
		{"new_credit", p.NewCredit},
	}
	for _, f := range fields {
		if f.value == nil {
			return fmt.Errorf("missing %s", f.name)
		}
		if *f.value < model.FactorMin || *f.value > model.FactorMax {
			return fmt.Errorf("%s out of range [%d, %d]", f.name, model.FactorMin, model.FactorMax)
		}
	}
	return nil
}

// factors converts the validated payload into the domain type.
func (p factorsPayload) factors() model.Factors {
	return model.Factors{
		PaymentHistory:    *p.PaymentHistory,
		CreditUtilization: *p.CreditUtilization,
		LengthOfHistory:   *p.LengthOfHistory,
		CreditMix:         *p.CreditMix,
		NewCredit:         *p.NewCredit,
	}
}

// evaluateRequest mirrors the OpenAPI schema for POST /evaluate.
type evaluateRequest struct {
	Factors factorsPayload `json:"factors"`
}

// forecastRequest mirrors the OpenAPI schema for POST /forecast.
type forecastRequest struct {
	Factors         factorsPayload `json:"factors"`
	Months          *int           `json:"months"`
	ImprovementRate *int           `json:"improvement_rate"`
}

func (r forecastRequest) validate() error {
	if err := r.Factors.validate(); err != nil {
		return err
	}
	if r.Months == nil {
		return errors.New("missing months")
	}
	if r.ImprovementRate == nil {
		return errors.New("missing improvement_rate")
	}
	// Range checks live in the projector so the bounds have one home.
	return nil
}

// saveHistoryRequest mirrors the OpenAPI schema for POST /sessions/{id}/history.
type saveHistoryRequest struct {
	Factors factorsPayload `json:"factors"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrSessionNotFound)
}
