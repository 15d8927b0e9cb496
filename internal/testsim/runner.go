package testsim

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scoresim/scoresim/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete simulator load test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting simulator load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("profiles", config.NumProfiles),
		logger.Int("saves", config.Saves),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("months", config.Months),
		logger.Int("rate", config.Rate),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate factor profiles
	profiles, err := generateProfiles(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("profile generation failed: %w", err)
	}

	// Step 3: Submit evaluations concurrently
	results, err := submitEvaluations(ctx, config, profiles, stats)
	if err != nil {
		return fmt.Errorf("evaluation submission failed: %w", err)
	}

	// Step 4: Verify evaluations against the locally recomputed formula
	if err := verifyEvaluations(ctx, results, stats); err != nil {
		return fmt.Errorf("evaluation verification failed: %w", err)
	}

	// Step 5: Verify the scale endpoints
	if err := verifyBoundaryVectors(ctx, config, stats); err != nil {
		return fmt.Errorf("boundary verification failed: %w", err)
	}

	// Step 6: Verify session history behavior
	if err := verifyHistory(ctx, config, profiles, stats); err != nil {
		return fmt.Errorf("history verification failed: %w", err)
	}

	// Step 7: Verify forecast invariants
	if err := verifyForecasts(ctx, config, profiles, stats); err != nil {
		return fmt.Errorf("forecast verification failed: %w", err)
	}

	// Step 8: Save profiles to file
	if err := saveProfilesToFile(ctx, config, profiles); err != nil {
		logger.Get().Warn(ctx, "failed to save profiles to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveProfilesToFile saves the generated profiles to a JSON file.
func saveProfilesToFile(ctx context.Context, config *Config, profiles []Profile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_profiles_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(profiles); err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}

	logger.Get().Info(ctx, "profiles saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, evalsPerSecond float64

	if stats.EvaluationsSubmitted > 0 {
		successRate = float64(stats.EvaluationsOK) / float64(stats.EvaluationsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		evalsPerSecond = float64(stats.EvaluationsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("evaluationsSubmitted", stats.EvaluationsSubmitted),
		logger.Int("evaluationsOK", stats.EvaluationsOK),
		logger.Int("evaluationsFailed", stats.EvaluationsFailed),
		logger.Int("forecastsSubmitted", stats.ForecastsSubmitted),
		logger.Int("forecastsOK", stats.ForecastsOK),
		logger.Int("snapshotsSaved", stats.SnapshotsSaved),
		logger.Int("verificationErrors", stats.VerificationErrors),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("evalsPerSecond", evalsPerSecond))
}
