package advice

import (
	"fmt"
	"strings"

	"github.com/scoresim/scoresim/internal/domain/model"
	"github.com/scoresim/scoresim/internal/domain/scoring"
)

// Insight condition thresholds. These are deliberately offset from the
// recommendation targets: the narrative only calls out pronounced
// strengths and weaknesses, not every firing rule.
const (
	highUtilization    = 50
	weakPaymentHistory = 70
	shortHistory       = 50
	newCreditRestraint = 80
)

// tierSentences keys the opening sentence on the score category.
var tierSentences = map[string]string{
	scoring.CategoryPoor:      "Your score sits in the poor range, so lenders will view new credit requests with caution.",
	scoring.CategoryFair:      "Your score is fair; steady habits over the next few months can lift it into good territory.",
	scoring.CategoryGood:      "Your score is good and already opens the door to competitive offers.",
	scoring.CategoryVeryGood:  "Your score is very good, putting you ahead of most borrowers.",
	scoring.CategoryExcellent: "Your score is excellent; keeping your current habits is all that is left to do.",
}

// Insight composes the narrative for a factor set and its score: one tier
// sentence followed by the conditional sentences that apply, joined with
// single spaces.
func (a *Advisor) Insight(f model.Factors, score int) string {
	return strings.Join(a.insightParts(f, score), " ")
}

// InsightWithForecast appends the projection sentence to the narrative.
func (a *Advisor) InsightWithForecast(f model.Factors, score, predicted, months int) string {
	parts := a.insightParts(f, score)
	parts = append(parts, fmt.Sprintf(
		"At the chosen improvement rate, the simulation projects a score of %d within %d months.",
		predicted, months))
	return strings.Join(parts, " ")
}

func (a *Advisor) insightParts(f model.Factors, score int) []string {
	category, _ := scoring.Classify(score)
	parts := []string{tierSentences[category]}

	if f.CreditUtilization > highUtilization {
		parts = append(parts, "High utilization is weighing on the score; paying balances down would have the fastest effect.")
	}
	if f.PaymentHistory < weakPaymentHistory {
		parts = append(parts, "Missed or late payments are the biggest drag on your profile right now.")
	}
	if f.LengthOfHistory < shortHistory {
		parts = append(parts, "A short credit history limits the score; time and open accounts work in your favor.")
	}
	if f.NewCredit > newCreditRestraint {
		parts = append(parts, "Your restraint on new credit applications is helping.")
	}
	if a.newCreditCaution && f.NewCredit < newCreditTarget {
		parts = append(parts, "Frequent credit applications are adding inquiries that hold the score back.")
	}

	return parts
}
