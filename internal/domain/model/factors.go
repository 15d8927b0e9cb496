// Package model contains domain models passed between layers.
package model

// Factor value bounds. Every factor is expressed on a 0-100 scale.
const (
	FactorMin = 0
	FactorMax = 100
)

// Factors holds the five credit inputs of one simulation.
// Field order matches the radar axis order used by the dashboard.
type Factors struct {
	PaymentHistory    int // on-time payment record
	CreditUtilization int // utilization slider value
	LengthOfHistory   int // age of the oldest accounts
	CreditMix         int // diversity of credit types
	NewCredit         int // restraint on recent applications
}

// Labels returns the display names of the five factors in axis order.
func Labels() []string {
	return []string{
		"Payment History",
		"Credit Utilization",
		"Credit Length",
		"Credit Mix",
		"New Credit",
	}
}

// Values returns the factor values in the same order as Labels.
func (f Factors) Values() []int {
	return []int{
		f.PaymentHistory,
		f.CreditUtilization,
		f.LengthOfHistory,
		f.CreditMix,
		f.NewCredit,
	}
}

// Clamped returns a copy with every factor forced into [FactorMin, FactorMax].
func (f Factors) Clamped() Factors {
	return Factors{
		PaymentHistory:    clampFactor(f.PaymentHistory),
		CreditUtilization: clampFactor(f.CreditUtilization),
		LengthOfHistory:   clampFactor(f.LengthOfHistory),
		CreditMix:         clampFactor(f.CreditMix),
		NewCredit:         clampFactor(f.NewCredit),
	}
}

// InRange reports whether every factor already sits inside the valid bounds.
func (f Factors) InRange() bool {
	for _, v := range f.Values() {
		if v < FactorMin || v > FactorMax {
			return false
		}
	}
	return true
}

func clampFactor(v int) int {
	if v < FactorMin {
		return FactorMin
	}
	if v > FactorMax {
		return FactorMax
	}
	return v
}
