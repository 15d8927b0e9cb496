package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/scoresim/scoresim/internal/testsim"
)

// Default configuration constants.
const (
	defaultNumProfiles = 1000
	defaultSaves       = 20
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultMonths      = 6
	defaultRate        = 10
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numProfiles = flag.Int("profiles", defaultNumProfiles, "Number of factor profiles to generate and evaluate")
		saves       = flag.Int("saves", defaultSaves, "Number of history snapshots to save into a session")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		months      = flag.Int("months", defaultMonths, "Forecast horizon in months (3-12)")
		rate        = flag.Int("rate", defaultRate, "Forecast improvement rate percentage (0-20)")
		outputFile  = flag.String("output", "", "Output file for generated profiles (default: generated_profiles_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testsim.ShowHelp()
		return
	}

	// Setup logging
	if err := testsim.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testsim.Config{
		BaseURL:     *baseURL,
		NumProfiles: *numProfiles,
		Saves:       *saves,
		Workers:     *workers,
		Timeout:     *timeout,
		Months:      *months,
		Rate:        *rate,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the test
	if err := testsim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
