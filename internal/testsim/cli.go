package testsim

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/scoresim/scoresim/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "test_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the simulator test tool.
func ShowHelp() {
	os.Stdout.WriteString(`ScoreSim Load Test Tool
=======================

A concurrent tool for exercising and verifying a running ScoreSim instance.

Usage:
  go run cmd/test-sim/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -profiles int
        Number of factor profiles to generate and evaluate (default 1000)
  -saves int
        Number of history snapshots to save into a session (default 20)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -months int
        Forecast horizon in months, 3-12 (default 6)
  -rate int
        Forecast improvement rate percentage, 0-20 (default 10)
  -output string
        Output file for generated profiles (default: generated_profiles_TIMESTAMP.json)
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/test-sim/main.go

  # Test with custom parameters
  go run cmd/test-sim/main.go -profiles 50000 -workers 16 -url http://localhost:8080

  # Test with verbose output
  go run cmd/test-sim/main.go -verbose -profiles 10000

  # Test with custom log file
  go run cmd/test-sim/main.go -profiles 50000 -log my_test.log
`)
}
