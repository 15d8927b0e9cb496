package testsim

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/scoresim/scoresim/pkg/logger"
)

// Constants for random number generation.
const (
	archetypeDivisor = 5
	factorSpan       = 101
)

// Constants for archetype cases.
const (
	caseBalanced   = 0
	caseDelinquent = 1
	caseMaxed      = 2
	caseThinFile   = 3
	caseRandom     = 4
)

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int64) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return int(v.Int64())
}

// randomFactor returns a random factor value in [min, max].
func randomFactor(min, max int) int {
	if max <= min {
		return min
	}
	return min + randomInt(int64(max-min+1))
}

// generateProfiles creates the specified number of factor profiles across
// the archetypes the dashboard's users fall into.
func generateProfiles(ctx context.Context, config *Config, stats *Stats) ([]Profile, error) {
	logger.Get().Info(ctx, "generating factor profiles", logger.Int("numProfiles", config.NumProfiles))

	profiles := make([]Profile, config.NumProfiles)

	// Generate profiles concurrently
	type profileResult struct {
		index   int
		profile Profile
		err     error
	}

	resultChan := make(chan profileResult, config.NumProfiles)

	// Use worker pool for profile generation
	workerCount := minInt(config.Workers, config.NumProfiles)
	profilesPerWorker := config.NumProfiles / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * profilesPerWorker
		end := start + profilesPerWorker
		if worker == workerCount-1 {
			end = config.NumProfiles // Last worker gets remaining profiles
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- profileResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- profileResult{index: i, profile: generateSingleProfile()}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumProfiles; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during profile generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate profile %d: %w", result.index, result.err)
			}
			profiles[result.index] = result.profile
		}
	}

	stats.ProfilesGenerated = len(profiles)
	logger.Get().Info(ctx, "generated profiles successfully", logger.Int("count", len(profiles)))

	return profiles, nil
}

// generateSingleProfile creates a single profile from a random archetype.
func generateSingleProfile() Profile {
	switch randomInt(archetypeDivisor) {
	case caseBalanced:
		// Established borrower with moderate utilization
		return Profile{
			Archetype: "balanced",
			Factors: FactorSet{
				PaymentHistory:    randomFactor(70, 95),
				CreditUtilization: randomFactor(20, 50),
				LengthOfHistory:   randomFactor(55, 85),
				CreditMix:         randomFactor(55, 85),
				NewCredit:         randomFactor(50, 80),
			},
		}
	case caseDelinquent:
		// Missed payments and heavy utilization
		return Profile{
			Archetype: "delinquent",
			Factors: FactorSet{
				PaymentHistory:    randomFactor(0, 45),
				CreditUtilization: randomFactor(70, 100),
				LengthOfHistory:   randomFactor(10, 50),
				CreditMix:         randomFactor(10, 50),
				NewCredit:         randomFactor(10, 50),
			},
		}
	case caseMaxed:
		// Near-perfect inputs, exercises the top score buckets
		return Profile{
			Archetype: "maxed",
			Factors: FactorSet{
				PaymentHistory:    randomFactor(95, 100),
				CreditUtilization: randomFactor(90, 100),
				LengthOfHistory:   randomFactor(90, 100),
				CreditMix:         randomFactor(90, 100),
				NewCredit:         randomFactor(90, 100),
			},
		}
	case caseThinFile:
		// Short history, few account types
		return Profile{
			Archetype: "thin-file",
			Factors: FactorSet{
				PaymentHistory:    randomFactor(60, 90),
				CreditUtilization: randomFactor(30, 70),
				LengthOfHistory:   randomFactor(0, 25),
				CreditMix:         randomFactor(0, 30),
				NewCredit:         randomFactor(20, 60),
			},
		}
	default:
		// Uniform across the full input space
		return Profile{
			Archetype: "random",
			Factors: FactorSet{
				PaymentHistory:    randomInt(factorSpan),
				CreditUtilization: randomInt(factorSpan),
				LengthOfHistory:   randomInt(factorSpan),
				CreditMix:         randomInt(factorSpan),
				NewCredit:         randomInt(factorSpan),
			},
		}
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
