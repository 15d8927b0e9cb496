// Package service provides the core simulator service that backs the HTTP
// API: scoring, classification, recommendations, forecasting and
// session-scoped history.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/scoresim/scoresim/internal/adapters/repository"
	"github.com/scoresim/scoresim/internal/domain/advice"
	"github.com/scoresim/scoresim/internal/domain/forecast"
	"github.com/scoresim/scoresim/internal/domain/model"
	"github.com/scoresim/scoresim/internal/domain/scoring"
	"github.com/scoresim/scoresim/internal/domain/types"
	"github.com/scoresim/scoresim/pkg/logger"
	"github.com/scoresim/scoresim/pkg/metrics"
)

// Default service configuration.
const (
	defaultMaxSessions   = 1024
	defaultSessionTTL    = 30 * time.Minute
	defaultSweepInterval = time.Minute
)

// Service implements the simulator operations exposed over the API.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	engine    *scoring.Engine
	advisor   *advice.Advisor
	projector *forecast.Projector

	// Configuration
	storeBackend  string
	redisAddr     string
	maxSessions   int
	sessionTTL    time.Duration
	sweepInterval time.Duration
	defaults      model.Factors

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a session store, bypassing construction on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRedis selects the Redis session store backed by the given address.
func WithRedis(addr string) Option {
	return func(s *Service) {
		if addr != "" {
			s.redisAddr = addr
		}
	}
}

// WithMaxSessions caps how many concurrent sessions the in-memory store keeps.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionTTL sets how long an idle session survives.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithSweepInterval sets how often the in-memory store sweeps expired sessions.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithDefaultFactors sets the starting factor values reported by Defaults.
func WithDefaultFactors(f model.Factors) Option {
	return func(s *Service) {
		if f.InRange() {
			s.defaults = f
		}
	}
}

// WithProjector injects the forecast projector, e.g. one with a fixed
// random source.
func WithProjector(p *forecast.Projector) Option {
	return func(s *Service) {
		if p != nil {
			s.projector = p
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxSessions:   defaultMaxSessions,
		sessionTTL:    defaultSessionTTL,
		sweepInterval: defaultSweepInterval,
		defaults: model.Factors{
			PaymentHistory:    85,
			CreditUtilization: 70,
			LengthOfHistory:   65,
			CreditMix:         75,
			NewCredit:         60,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start wires up the scoring engine, advisor, projector and session store.
// It is safe to call more than once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting simulator service...")

	switch {
	case s.store != nil:
		s.storeBackend = "injected"
	case s.redisAddr != "":
		store, err := repository.NewRedisStore(ctx, s.redisAddr, repository.WithRedisTTL(s.sessionTTL))
		if err != nil {
			return fmt.Errorf("start session store: %w", err)
		}
		s.store = store
		s.storeBackend = "redis"
		s.logger.Info(ctx, "using redis session store", logger.String("addr", s.redisAddr))
	default:
		s.store = repository.NewMemStore(ctx,
			repository.WithMaxSessions(s.maxSessions),
			repository.WithSessionTTL(s.sessionTTL),
			repository.WithSweepInterval(s.sweepInterval),
		)
		s.storeBackend = "memory"
		s.logger.Info(ctx, "using in-memory session store",
			logger.Int("maxSessions", s.maxSessions),
			logger.Duration("sessionTTL", s.sessionTTL),
		)
	}

	s.engine = scoring.NewEngine()
	s.advisor = advice.NewAdvisor()
	if s.projector == nil {
		s.projector = forecast.NewProjector()
	}

	s.started = true
	s.logger.Info(ctx, "simulator service started")

	return nil
}

// Stop shuts the service down and releases the session store. It is safe to
// call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping simulator service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(ctx, "failed to close session store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "simulator service stopped")
}

// Evaluate scores one set of factors and assembles the full evaluation:
// classification, progress, radar data, recommendations and narrative
// insight. Factors are expected to be validated by the caller.
func (s *Service) Evaluate(ctx context.Context, f model.Factors) types.Evaluation {
	score := s.engine.Score(f)
	category, color := scoring.Classify(score)
	recommendations := s.advisor.Recommendations(f)

	metrics.RecordEvaluation()
	metrics.RecordScore(score)
	metrics.RecordScoreCategory(category)
	metrics.RecordRecommendationCount(len(recommendations))

	s.logger.Debug(ctx, "evaluated factors",
		logger.Int("score", score),
		logger.String("category", category),
		logger.Int("recommendations", len(recommendations)),
	)

	return types.Evaluation{
		Score:           score,
		Category:        category,
		Color:           color,
		Progress:        scoring.Progress(score),
		Factors:         toFactorSet(f),
		Radar:           radarFor(f),
		Recommendations: recommendations,
		Insight:         s.advisor.Insight(f, score),
	}
}

// Forecast projects the factors months ahead at the given improvement rate
// and scores the projection against the current score.
func (s *Service) Forecast(ctx context.Context, f model.Factors, months, rate int) (types.Forecast, error) {
	projected, err := s.projector.Project(f, months, rate)
	if err != nil {
		metrics.RecordErrorByComponent("service", "forecast_input")
		return types.Forecast{}, fmt.Errorf("project factors: %w", err)
	}

	current := s.engine.Score(f)
	predicted := s.engine.Score(projected)
	predictedCategory, _ := scoring.Classify(predicted)
	delta := predicted - current

	metrics.RecordForecast()
	metrics.RecordForecastDelta(delta)

	s.logger.Debug(ctx, "projected factors",
		logger.Int("currentScore", current),
		logger.Int("predictedScore", predicted),
		logger.Int("delta", delta),
		logger.Int("months", months),
		logger.Int("rate", rate),
	)

	return types.Forecast{
		CurrentScore:      current,
		PredictedScore:    predicted,
		PredictedCategory: predictedCategory,
		Delta:             delta,
		DeltaLabel:        fmt.Sprintf("%+d", delta),
		Months:            months,
		ImprovementRate:   rate,
		ProjectedFactors:  toFactorSet(projected),
		Trend: []types.TrendPoint{
			{Seq: 0, Score: current},
			{Seq: months, Score: predicted},
		},
		Insight: s.advisor.InsightWithForecast(f, current, predicted, months),
	}, nil
}

// CreateSession registers a new history session.
func (s *Service) CreateSession(ctx context.Context) (types.SessionInfo, error) {
	sess, err := s.store.Create(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "session_create")
		return types.SessionInfo{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info(ctx, "session created", logger.String("sessionID", sess.ID))

	return toSessionInfo(sess), nil
}

// Session returns one session's summary.
func (s *Service) Session(ctx context.Context, id string) (types.SessionInfo, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return types.SessionInfo{}, fmt.Errorf("get session: %w", err)
	}

	return toSessionInfo(sess), nil
}

// SaveHistory evaluates the factors and appends the resulting snapshot to
// the session's history.
func (s *Service) SaveHistory(ctx context.Context, id string, f model.Factors) (types.HistoryEntry, error) {
	score := s.engine.Score(f)
	category, color := scoring.Classify(score)

	entry, err := s.store.Append(ctx, id, model.HistoryEntry{
		Factors:  f,
		Score:    score,
		Category: category,
		Color:    color,
	})
	if err != nil {
		return types.HistoryEntry{}, fmt.Errorf("append history: %w", err)
	}

	metrics.RecordHistorySave()

	s.logger.Debug(ctx, "history entry saved",
		logger.String("sessionID", id),
		logger.Int("seq", entry.Seq),
		logger.Int("score", entry.Score),
	)

	return toHistoryEntry(entry), nil
}

// History returns all saved snapshots for a session in save order.
func (s *Service) History(ctx context.Context, id string) ([]types.HistoryEntry, error) {
	entries, err := s.store.Entries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	out := make([]types.HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = toHistoryEntry(e)
	}

	return out, nil
}

// Trend returns the score-over-save-order line for a session.
func (s *Service) Trend(ctx context.Context, id string) ([]types.TrendPoint, error) {
	entries, err := s.store.Entries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	points := make([]types.TrendPoint, len(entries))
	for i, e := range entries {
		points[i] = types.TrendPoint{Seq: e.Seq, Score: e.Score}
	}

	return points, nil
}

// Defaults reports the starting factor values, the scoring weights and the
// control ranges the UI needs to render its sliders.
func (s *Service) Defaults(_ context.Context) types.Defaults {
	s.mu.RLock()
	defaults := s.defaults
	s.mu.RUnlock()

	return types.Defaults{
		Factors:         toFactorSet(defaults),
		Weights:         s.engine.Weights().Map(),
		Labels:          model.Labels(),
		FactorRange:     types.ControlRange{Min: model.FactorMin, Max: model.FactorMax},
		MonthsRange:     types.ControlRange{Min: forecast.MonthsMin, Max: forecast.MonthsMax},
		ImprovementRate: types.ControlRange{Min: forecast.RateMin, Max: forecast.RateMax},
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"store":       s.storeBackend,
		"maxSessions": s.maxSessions,
		"sessionTTL":  s.sessionTTL.String(),
	}

	if s.started {
		ctx := context.Background()
		sessions := s.store.Sessions(ctx)
		entries := s.store.EntryCount(ctx)

		stats["sessions"] = sessions
		stats["historyEntries"] = entries

		metrics.UpdateActiveSessions(sessions)
		metrics.UpdateHistoryEntries(entries)
	}

	return stats
}

// radarFor builds the radar polygon for the chart: the first axis is
// repeated at the end so the outline closes.
func radarFor(f model.Factors) types.Radar {
	labels := model.Labels()
	values := f.Values()

	axes := make([]string, 0, len(labels)+1)
	axes = append(axes, labels...)
	axes = append(axes, labels[0])

	closed := make([]int, 0, len(values)+1)
	closed = append(closed, values...)
	closed = append(closed, values[0])

	return types.Radar{Axes: axes, Values: closed}
}

func toFactorSet(f model.Factors) types.FactorSet {
	return types.FactorSet{
		PaymentHistory:    f.PaymentHistory,
		CreditUtilization: f.CreditUtilization,
		LengthOfHistory:   f.LengthOfHistory,
		CreditMix:         f.CreditMix,
		NewCredit:         f.NewCredit,
	}
}

func toSessionInfo(sess repository.Session) types.SessionInfo {
	return types.SessionInfo{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		Entries:   sess.Entries,
	}
}

func toHistoryEntry(e model.HistoryEntry) types.HistoryEntry {
	return types.HistoryEntry{
		Seq:      e.Seq,
		Factors:  toFactorSet(e.Factors),
		Score:    e.Score,
		Category: e.Category,
		Color:    e.Color,
		SavedAt:  e.SavedAt,
	}
}
