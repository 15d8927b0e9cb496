// Package types contains common types used across the application
package types

import "time"

// FactorSet is the JSON shape of the five credit inputs.
type FactorSet struct {
	PaymentHistory    int `json:"payment_history"`
	CreditUtilization int `json:"credit_utilization"`
	LengthOfHistory   int `json:"length_of_history"`
	CreditMix         int `json:"credit_mix"`
	NewCredit         int `json:"new_credit"`
}

// Radar describes the closed polygon drawn by the dashboard:
// the first axis/value pair is repeated at the end to close the loop.
type Radar struct {
	Axes   []string `json:"axes"`
	Values []int    `json:"values"`
}

// Evaluation is the full result of scoring one FactorSet.
type Evaluation struct {
	Score           int       `json:"score"`
	Category        string    `json:"category"`
	Color           string    `json:"color"`
	Progress        float64   `json:"progress"`
	Factors         FactorSet `json:"factors"`
	Radar           Radar     `json:"radar"`
	Recommendations []string  `json:"recommendations"`
	Insight         string    `json:"insight"`
}

// TrendPoint is one point of the history line chart, indexed by save order.
type TrendPoint struct {
	Seq   int `json:"seq"`
	Score int `json:"score"`
}

// Forecast reports a hypothetical future score next to the current one.
type Forecast struct {
	CurrentScore      int          `json:"current_score"`
	PredictedScore    int          `json:"predicted_score"`
	PredictedCategory string       `json:"predicted_category"`
	Delta             int          `json:"delta"`
	DeltaLabel        string       `json:"delta_label"`
	Months            int          `json:"months"`
	ImprovementRate   int          `json:"improvement_rate"`
	ProjectedFactors  FactorSet    `json:"projected_factors"`
	Trend             []TrendPoint `json:"trend"`
	Insight           string       `json:"insight"`
}

// HistoryEntry is the JSON shape of one saved simulation snapshot.
type HistoryEntry struct {
	Seq      int       `json:"seq"`
	Factors  FactorSet `json:"factors"`
	Score    int       `json:"score"`
	Category string    `json:"category"`
	Color    string    `json:"color"`
	SavedAt  time.Time `json:"saved_at"`
}

// SessionInfo summarizes one interactive session.
type SessionInfo struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Entries   int       `json:"entries"`
}

// ControlRange bounds one numeric dashboard control.
type ControlRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Defaults carries everything the dashboard needs to render its controls.
type Defaults struct {
	Factors         FactorSet          `json:"factors"`
	Weights         map[string]float64 `json:"weights"`
	Labels          []string           `json:"labels"`
	FactorRange     ControlRange       `json:"factor_range"`
	MonthsRange     ControlRange       `json:"months_range"`
	ImprovementRate ControlRange       `json:"improvement_rate_range"`
}
