// Package scoring computes the synthetic FICO-style score from credit factors.
package scoring

import (
	"math"

	"github.com/scoresim/scoresim/internal/domain/model"
)

// Score bounds. The weighted factor sum lies in [0,1], so every score
// produced from in-range factors lands inside [ScoreFloor, ScoreCeil].
const (
	ScoreFloor = 300
	ScoreCeil  = 850

	scoreSpan = ScoreCeil - ScoreFloor
)

// weightSumTolerance bounds how far a custom weight set may drift from 1.0.
const weightSumTolerance = 1e-9

// Weights assigns the contribution of each factor to the weighted sum.
// The five values must be non-negative and sum to 1.0.
type Weights struct {
	PaymentHistory    float64
	CreditUtilization float64
	LengthOfHistory   float64
	CreditMix         float64
	NewCredit         float64
}

// DefaultWeights returns the fixed FICO-style weighting:
// 35% payment history, 30% utilization, 15% history length,
// 10% credit mix, 10% new credit.
func DefaultWeights() Weights {
	return Weights{
		PaymentHistory:    0.35,
		CreditUtilization: 0.30,
		LengthOfHistory:   0.15,
		CreditMix:         0.10,
		NewCredit:         0.10,
	}
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.PaymentHistory + w.CreditUtilization + w.LengthOfHistory + w.CreditMix + w.NewCredit
}

// Map exposes the weights keyed by wire factor name, for the dashboard.
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		"payment_history":    w.PaymentHistory,
		"credit_utilization": w.CreditUtilization,
		"length_of_history":  w.LengthOfHistory,
		"credit_mix":         w.CreditMix,
		"new_credit":         w.NewCredit,
	}
}

func (w Weights) valid() bool {
	for _, v := range []float64{w.PaymentHistory, w.CreditUtilization, w.LengthOfHistory, w.CreditMix, w.NewCredit} {
		if v < 0 {
			return false
		}
	}
	return math.Abs(w.Sum()-1.0) <= weightSumTolerance
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights overrides the default weights. Weight sets that are negative
// or do not sum to 1.0 are ignored.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if w.valid() {
			e.weights = w
		}
	}
}

// Engine turns a factor set into a score. It is pure and safe for
// concurrent use; the same factors always produce the same score.
type Engine struct {
	weights Weights
}

// NewEngine creates an Engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: DefaultWeights(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Weights returns the weight set the engine scores with.
func (e *Engine) Weights() Weights {
	return e.weights
}

// WeightedSum normalizes each factor to [0,1] and combines them with the
// engine weights. The result lies in [0,1] for in-range factors.
func (e *Engine) WeightedSum(f model.Factors) float64 {
	return float64(f.PaymentHistory)/model.FactorMax*e.weights.PaymentHistory +
		float64(f.CreditUtilization)/model.FactorMax*e.weights.CreditUtilization +
		float64(f.LengthOfHistory)/model.FactorMax*e.weights.LengthOfHistory +
		float64(f.CreditMix)/model.FactorMax*e.weights.CreditMix +
		float64(f.NewCredit)/model.FactorMax*e.weights.NewCredit
}

// Score maps the weighted sum into [ScoreFloor, ScoreCeil] and rounds to
// the nearest integer.
func (e *Engine) Score(f model.Factors) int {
	return int(math.Round(ScoreFloor + e.WeightedSum(f)*scoreSpan))
}
