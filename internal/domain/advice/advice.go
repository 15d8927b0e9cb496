// Package advice derives textual recommendations and narrative insight
// from a credit factor set.
package advice

import (
	"github.com/scoresim/scoresim/internal/domain/model"
)

// Rule thresholds. A rule fires when its factor crosses the threshold in
// the unfavorable direction; utilization reads the slider as a percentage
// of available credit, where lower is better.
const (
	paymentHistoryTarget = 80
	utilizationTarget    = 30
	historyLengthTarget  = 70
	creditMixTarget      = 60
	newCreditTarget      = 60
)

// FallbackMessage is emitted when no recommendation rule fires.
const FallbackMessage = "Excellent! Your credit profile looks balanced and strong."

// rule pairs a firing condition with its recommendation text.
type rule struct {
	applies func(model.Factors) bool
	message string
}

// defaultRules returns the recommendation rules in emission order.
// Rules are independent: zero or more may fire for a given factor set.
func defaultRules() []rule {
	return []rule{
		{
			applies: func(f model.Factors) bool { return f.PaymentHistory < paymentHistoryTarget },
			message: "Improve payment history by making all payments on time.",
		},
		{
			applies: func(f model.Factors) bool { return f.CreditUtilization > utilizationTarget },
			message: "Reduce credit utilization below 30% of available credit.",
		},
		{
			applies: func(f model.Factors) bool { return f.LengthOfHistory < historyLengthTarget },
			message: "Keep older credit accounts open to build a longer history.",
		},
		{
			applies: func(f model.Factors) bool { return f.CreditMix < creditMixTarget },
			message: "Add different credit types, such as an installment loan next to revolving credit.",
		},
		{
			applies: func(f model.Factors) bool { return f.NewCredit < newCreditTarget },
			message: "Limit new credit applications; too many inquiries can lower your score.",
		},
	}
}

// Option applies a configuration option to the Advisor.
type Option func(*Advisor)

// WithNewCreditCaution toggles the extra insight sentence emitted when the
// new-credit factor drops below its target. Enabled by default.
func WithNewCreditCaution(enabled bool) Option {
	return func(a *Advisor) {
		a.newCreditCaution = enabled
	}
}

// Advisor evaluates the recommendation rules and composes insight text.
// It is stateless and safe for concurrent use.
type Advisor struct {
	rules            []rule
	newCreditCaution bool
}

// NewAdvisor creates an Advisor with configuration options.
func NewAdvisor(opts ...Option) *Advisor {
	a := &Advisor{
		rules:            defaultRules(),
		newCreditCaution: true,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Recommendations returns the messages of all firing rules in rule order,
// or the single fallback message when none fire.
func (a *Advisor) Recommendations(f model.Factors) []string {
	var out []string
	for _, r := range a.rules {
		if r.applies(f) {
			out = append(out, r.message)
		}
	}
	if len(out) == 0 {
		return []string{FallbackMessage}
	}
	return out
}
