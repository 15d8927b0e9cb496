package testsim

import (
	"context"
	"fmt"
	"log"
	"math"
)

// Factor weights used by the service's scoring formula.
const (
	weightPaymentHistory    = 0.35
	weightCreditUtilization = 0.30
	weightLengthOfHistory   = 0.15
	weightCreditMix         = 0.10
	weightNewCredit         = 0.10
)

// expectedScore recomputes the weighted score locally so wire results can be
// checked against an independent implementation.
func expectedScore(f FactorSet) int {
	ws := float64(f.PaymentHistory)/100*weightPaymentHistory +
		float64(f.CreditUtilization)/100*weightCreditUtilization +
		float64(f.LengthOfHistory)/100*weightLengthOfHistory +
		float64(f.CreditMix)/100*weightCreditMix +
		float64(f.NewCredit)/100*weightNewCredit
	return int(math.Round(ScoreMin + ws*(ScoreMax-ScoreMin)))
}

// expectedCategory buckets a score the way the service does.
func expectedCategory(score int) string {
	switch {
	case score < 580:
		return "Poor"
	case score < 670:
		return "Fair"
	case score < 740:
		return "Good"
	case score < 800:
		return "Very Good"
	default:
		return "Excellent"
	}
}

// expectedRecommendations applies the service's rule set locally, in rule
// order, with the same fallback message semantics (non-empty list always).
func expectedRecommendationCount(f FactorSet) int {
	count := 0
	if f.PaymentHistory < 80 {
		count++
	}
	if f.CreditUtilization > 30 {
		count++
	}
	if f.LengthOfHistory < 70 {
		count++
	}
	if f.CreditMix < 60 {
		count++
	}
	if f.NewCredit < 60 {
		count++
	}
	if count == 0 {
		count = 1 // fallback affirmative message
	}
	return count
}

// verifyEvaluations checks every completed evaluation against the locally
// recomputed score, category and recommendation count.
func verifyEvaluations(ctx context.Context, results []EvalResult, stats *Stats) error {
	log.Printf("🔍 Verifying %d evaluations...", len(results))

	errors := 0
	for _, r := range results {
		ev := r.Evaluation
		f := r.Profile.Factors

		if ev.Score < ScoreMin || ev.Score > ScoreMax {
			errors++
			log.Printf("❌ score %d outside [%d, %d] for %s profile", ev.Score, ScoreMin, ScoreMax, r.Profile.Archetype)
			continue
		}

		if want := expectedScore(f); ev.Score != want {
			errors++
			log.Printf("❌ score mismatch for %s profile: got %d, want %d", r.Profile.Archetype, ev.Score, want)
			continue
		}

		if want := expectedCategory(ev.Score); ev.Category != want {
			errors++
			log.Printf("❌ category mismatch for score %d: got %q, want %q", ev.Score, ev.Category, want)
			continue
		}

		if want := expectedRecommendationCount(f); len(ev.Recommendations) != want {
			errors++
			log.Printf("❌ recommendation count mismatch: got %d, want %d", len(ev.Recommendations), want)
			continue
		}

		if ev.Progress < 0 || ev.Progress > 1 {
			errors++
			log.Printf("❌ progress %.4f outside [0, 1]", ev.Progress)
		}
	}

	stats.VerificationErrors += errors
	if errors > 0 {
		return fmt.Errorf("evaluation verification found %d errors", errors)
	}

	log.Printf("✅ All %d evaluations verified", len(results))
	return nil
}

// verifyBoundaryVectors checks the scale endpoints: all-zero factors must
// map to the scale floor, all-hundred factors to the ceiling.
func verifyBoundaryVectors(ctx context.Context, config *Config, stats *Stats) error {
	log.Printf("🔍 Verifying boundary vectors...")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/evaluate"

	cases := []struct {
		name    string
		factors FactorSet
		want    int
		wantCat string
	}{
		{
			name:    "floor",
			factors: FactorSet{},
			want:    ScoreMin,
			wantCat: "Poor",
		},
		{
			name: "ceiling",
			factors: FactorSet{
				PaymentHistory:    FactorMax,
				CreditUtilization: FactorMax,
				LengthOfHistory:   FactorMax,
				CreditMix:         FactorMax,
				NewCredit:         FactorMax,
			},
			want:    ScoreMax,
			wantCat: "Excellent",
		},
	}

	errors := 0
	for _, tc := range cases {
		var ev Evaluation
		status, err := postJSON(ctx, client, url, evaluateRequest{Factors: tc.factors}, &ev)
		if err != nil || status != StatusOK {
			errors++
			log.Printf("❌ boundary vector %q request failed (status %d): %v", tc.name, status, err)
			continue
		}
		if ev.Score != tc.want {
			errors++
			log.Printf("❌ boundary vector %q: got score %d, want %d", tc.name, ev.Score, tc.want)
		}
		if ev.Category != tc.wantCat {
			errors++
			log.Printf("❌ boundary vector %q: got category %q, want %q", tc.name, ev.Category, tc.wantCat)
		}
	}

	stats.VerificationErrors += errors
	if errors > 0 {
		return fmt.Errorf("boundary verification found %d errors", errors)
	}

	log.Printf("✅ Boundary vectors verified")
	return nil
}

// verifyHistory saves the given number of snapshots into a fresh session and
// checks that the history grows strictly additively with contiguous
// sequence numbers.
func verifyHistory(ctx context.Context, config *Config, profiles []Profile, stats *Stats) error {
	log.Printf("🔍 Verifying session history with %d saves...", config.Saves)

	client := newHTTPClient(config.Timeout)

	var sess SessionInfo
	status, err := postJSON(ctx, client, config.BaseURL+"/sessions", struct{}{}, &sess)
	if err != nil || status != StatusCreated {
		return fmt.Errorf("session creation failed (status %d): %w", status, err)
	}

	historyURL := config.BaseURL + "/sessions/" + sess.ID + "/history"

	errors := 0
	for i := 0; i < config.Saves; i++ {
		profile := profiles[i%len(profiles)]

		var entry HistoryEntry
		status, err := postJSON(ctx, client, historyURL, evaluateRequest{Factors: profile.Factors}, &entry)
		if err != nil || status != StatusCreated {
			errors++
			log.Printf("❌ snapshot save %d failed (status %d): %v", i+1, status, err)
			continue
		}

		stats.SnapshotsSaved++
		if entry.Seq != i+1 {
			errors++
			log.Printf("❌ snapshot save %d: got seq %d, want %d", i+1, entry.Seq, i+1)
		}
		if want := expectedScore(profile.Factors); entry.Score != want {
			errors++
			log.Printf("❌ snapshot save %d: got score %d, want %d", i+1, entry.Score, want)
		}
	}

	// Read back the full history and cross-check length and ordering
	var entries []HistoryEntry
	status, err = getJSON(ctx, client, historyURL, &entries)
	if err != nil || status != StatusOK {
		return fmt.Errorf("history read failed (status %d): %w", status, err)
	}

	if len(entries) != config.Saves {
		errors++
		log.Printf("❌ history length: got %d entries after %d saves", len(entries), config.Saves)
	}
	for i, entry := range entries {
		if entry.Seq != i+1 {
			errors++
			log.Printf("❌ history order: entry %d has seq %d", i, entry.Seq)
		}
	}

	stats.VerificationErrors += errors
	if errors > 0 {
		return fmt.Errorf("history verification found %d errors", errors)
	}

	log.Printf("✅ Session history verified (%d entries)", len(entries))
	return nil
}

// forecastRequest is the /forecast payload shape.
type forecastRequest struct {
	Factors         FactorSet `json:"factors"`
	Months          int       `json:"months"`
	ImprovementRate int       `json:"improvement_rate"`
}

// verifyForecasts submits a forecast per profile subset and checks the
// clamping and delta invariants. The projected values themselves are
// randomized by the service, so only the bounds and arithmetic are checked.
func verifyForecasts(ctx context.Context, config *Config, profiles []Profile, stats *Stats) error {
	sample := minInt(len(profiles), config.Saves)
	log.Printf("🔍 Verifying %d forecasts (months=%d, rate=%d)...", sample, config.Months, config.Rate)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/forecast"

	errors := 0
	for i := 0; i < sample; i++ {
		f := profiles[i].Factors

		var fc Forecast
		stats.ForecastsSubmitted++
		status, err := postJSON(ctx, client, url, forecastRequest{
			Factors:         f,
			Months:          config.Months,
			ImprovementRate: config.Rate,
		}, &fc)
		if err != nil || status != StatusOK {
			errors++
			log.Printf("❌ forecast %d failed (status %d): %v", i+1, status, err)
			continue
		}
		stats.ForecastsOK++

		if want := expectedScore(f); fc.CurrentScore != want {
			errors++
			log.Printf("❌ forecast %d: current score %d, want %d", i+1, fc.CurrentScore, want)
		}
		if fc.PredictedScore < ScoreMin || fc.PredictedScore > ScoreMax {
			errors++
			log.Printf("❌ forecast %d: predicted score %d outside [%d, %d]", i+1, fc.PredictedScore, ScoreMin, ScoreMax)
		}
		if fc.Delta != fc.PredictedScore-fc.CurrentScore {
			errors++
			log.Printf("❌ forecast %d: delta %d != %d - %d", i+1, fc.Delta, fc.PredictedScore, fc.CurrentScore)
		}
		for _, v := range []int{
			fc.ProjectedFactors.PaymentHistory,
			fc.ProjectedFactors.CreditUtilization,
			fc.ProjectedFactors.LengthOfHistory,
			fc.ProjectedFactors.CreditMix,
			fc.ProjectedFactors.NewCredit,
		} {
			if v < FactorMin || v > FactorMax {
				errors++
				log.Printf("❌ forecast %d: projected factor %d outside [%d, %d]", i+1, v, FactorMin, FactorMax)
			}
		}
	}

	stats.VerificationErrors += errors
	if errors > 0 {
		return fmt.Errorf("forecast verification found %d errors", errors)
	}

	log.Printf("✅ Forecasts verified")
	return nil
}
