package testsim

import "time"

// Config holds configuration for the simulator load test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumProfiles int           // Number of factor profiles to generate
	Saves       int           // Number of history snapshots to save per session
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	Months      int           // Forecast horizon in months
	Rate        int           // Forecast improvement rate percentage
	OutputFile  string        // Output file for generated profiles
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// FactorSet mirrors the API's factor payload
type FactorSet struct {
	PaymentHistory    int `json:"payment_history"`
	CreditUtilization int `json:"credit_utilization"`
	LengthOfHistory   int `json:"length_of_history"`
	CreditMix         int `json:"credit_mix"`
	NewCredit         int `json:"new_credit"`
}

// Profile is one generated factor set plus the archetype that produced it
type Profile struct {
	Archetype string    `json:"archetype"`
	Factors   FactorSet `json:"factors"`
}

// Evaluation mirrors the /evaluate response
type Evaluation struct {
	Score           int       `json:"score"`
	Category        string    `json:"category"`
	Color           string    `json:"color"`
	Progress        float64   `json:"progress"`
	Factors         FactorSet `json:"factors"`
	Recommendations []string  `json:"recommendations"`
	Insight         string    `json:"insight"`
}

// Forecast mirrors the /forecast response
type Forecast struct {
	CurrentScore     int       `json:"current_score"`
	PredictedScore   int       `json:"predicted_score"`
	Delta            int       `json:"delta"`
	DeltaLabel       string    `json:"delta_label"`
	Months           int       `json:"months"`
	ImprovementRate  int       `json:"improvement_rate"`
	ProjectedFactors FactorSet `json:"projected_factors"`
}

// SessionInfo mirrors the /sessions response
type SessionInfo struct {
	ID        string `json:"session_id"`
	CreatedAt string `json:"created_at"`
	Entries   int    `json:"entries"`
}

// HistoryEntry mirrors one saved snapshot in the history response
type HistoryEntry struct {
	Seq      int       `json:"seq"`
	Factors  FactorSet `json:"factors"`
	Score    int       `json:"score"`
	Category string    `json:"category"`
}

// EvalResult pairs a submitted profile with the evaluation it produced
type EvalResult struct {
	Profile    Profile
	Evaluation Evaluation
}

// Stats holds test statistics
type Stats struct {
	ProfilesGenerated    int
	EvaluationsSubmitted int
	EvaluationsOK        int
	EvaluationsFailed    int
	ForecastsSubmitted   int
	ForecastsOK          int
	SnapshotsSaved       int
	VerificationErrors   int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
