// Package forecast projects a credit factor set forward under an assumed
// improvement effort, adding a small random jitter so repeated simulations
// vary the way real-world outcomes would.
package forecast

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/scoresim/scoresim/internal/domain/model"
)

// Bounds for the projection controls.
const (
	MonthsMin = 3
	MonthsMax = 12
	RateMin   = 0
	RateMax   = 20
)

// Per-factor multipliers applied to the improvement rate. Utilization
// improves downward, hence the negative multiplier.
const (
	paymentMultiplier     = 0.8
	utilizationMultiplier = -0.5
	lengthMultiplier      = 0.3
	mixMultiplier         = 0.2
	newCreditMultiplier   = 0.1
)

// jitterSpan bounds the shared random offset: one draw from
// [-jitterSpan, jitterSpan] is applied to every factor.
const jitterSpan = 2.0

// Option applies a configuration option to the Projector.
type Option func(*Projector)

// WithSource sets the random source used for the jitter draw. A nil source
// is ignored. Fixing the source makes projections reproducible.
func WithSource(src rand.Source) Option {
	return func(p *Projector) {
		if src == nil {
			return
		}
		p.rng = rand.New(src)
	}
}

// Projector computes projected factor sets. Safe for concurrent use.
type Projector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewProjector creates a Projector with configuration options.
func NewProjector(opts ...Option) *Projector {
	p := &Projector{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Project applies the improvement rate and one shared random offset to each
// factor and clamps the results into the factor range. The month horizon is
// validated here but shapes only the narrative and trend rendering; the
// projection applies the rate once regardless of horizon.
func (p *Projector) Project(f model.Factors, months, rate int) (model.Factors, error) {
	if months < MonthsMin || months > MonthsMax {
		return model.Factors{}, ErrMonthsOutOfRange
	}
	if rate < RateMin || rate > RateMax {
		return model.Factors{}, ErrRateOutOfRange
	}

	offset := p.jitter()
	r := float64(rate)

	return model.Factors{
		PaymentHistory:    projectFactor(f.PaymentHistory, r, paymentMultiplier, offset),
		CreditUtilization: projectFactor(f.CreditUtilization, r, utilizationMultiplier, offset),
		LengthOfHistory:   projectFactor(f.LengthOfHistory, r, lengthMultiplier, offset),
		CreditMix:         projectFactor(f.CreditMix, r, mixMultiplier, offset),
		NewCredit:         projectFactor(f.NewCredit, r, newCreditMultiplier, offset),
	}, nil
}

// jitter draws the shared offset uniformly from [-jitterSpan, jitterSpan].
func (p *Projector) jitter() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return (p.rng.Float64()*2 - 1) * jitterSpan
}

// projectFactor nudges one factor and clamps it into [FactorMin, FactorMax].
func projectFactor(value int, rate, multiplier, offset float64) int {
	projected := int(math.Round(float64(value) + rate*multiplier + offset))
	if projected < model.FactorMin {
		return model.FactorMin
	}
	if projected > model.FactorMax {
		return model.FactorMax
	}

	return projected
}
