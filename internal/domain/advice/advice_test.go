package advice

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/scoresim/scoresim/internal/domain/model"
)

func TestRecommendations(t *testing.T) {
	Convey("Given an advisor with default rules", t, func() {
		adv := NewAdvisor()

		Convey("When the starting factor set is evaluated", func() {
			recs := adv.Recommendations(model.Factors{
				PaymentHistory:    85,
				CreditUtilization: 70,
				LengthOfHistory:   65,
				CreditMix:         75,
				NewCredit:         60,
			})

			Convey("Then utilization and history length should fire in rule order", func() {
				So(recs, ShouldHaveLength, 2)
				So(recs[0], ShouldContainSubstring, "utilization")
				So(recs[1], ShouldContainSubstring, "older credit accounts")
			})
		})

		Convey("When every factor is weak", func() {
			recs := adv.Recommendations(model.Factors{
				PaymentHistory:    40,
				CreditUtilization: 90,
				LengthOfHistory:   30,
				CreditMix:         20,
				NewCredit:         10,
			})

			Convey("Then all five rules should fire in rule order", func() {
				So(recs, ShouldHaveLength, 5)
				So(recs[0], ShouldContainSubstring, "payment history")
				So(recs[1], ShouldContainSubstring, "utilization")
				So(recs[2], ShouldContainSubstring, "longer history")
				So(recs[3], ShouldContainSubstring, "credit types")
				So(recs[4], ShouldContainSubstring, "new credit applications")
			})
		})

		Convey("When no rule fires", func() {
			recs := adv.Recommendations(model.Factors{
				PaymentHistory:    95,
				CreditUtilization: 20,
				LengthOfHistory:   80,
				CreditMix:         80,
				NewCredit:         90,
			})

			Convey("Then only the fallback message should be returned", func() {
				So(recs, ShouldResemble, []string{FallbackMessage})
			})
		})

		Convey("When factors sit exactly on their targets", func() {
			recs := adv.Recommendations(model.Factors{
				PaymentHistory:    80,
				CreditUtilization: 30,
				LengthOfHistory:   70,
				CreditMix:         60,
				NewCredit:         60,
			})

			Convey("Then no rule should fire", func() {
				So(recs, ShouldResemble, []string{FallbackMessage})
			})
		})

		Convey("When factors sit one step past their targets", func() {
			recs := adv.Recommendations(model.Factors{
				PaymentHistory:    79,
				CreditUtilization: 31,
				LengthOfHistory:   69,
				CreditMix:         59,
				NewCredit:         59,
			})

			Convey("Then every rule should fire", func() {
				So(recs, ShouldHaveLength, 5)
			})
		})
	})
}

func TestInsight(t *testing.T) {
	Convey("Given an advisor with default options", t, func() {
		adv := NewAdvisor()

		Convey("When the starting factor set scores in the good tier", func() {
			text := adv.Insight(model.Factors{
				PaymentHistory:    85,
				CreditUtilization: 70,
				LengthOfHistory:   65,
				CreditMix:         75,
				NewCredit:         60,
			}, 707)

			Convey("Then it should open with the good-tier sentence", func() {
				So(text, ShouldStartWith, "Your score is good")
			})

			Convey("And it should flag high utilization and nothing else", func() {
				So(text, ShouldContainSubstring, "High utilization")
				So(text, ShouldNotContainSubstring, "late payments")
				So(text, ShouldNotContainSubstring, "short credit history")
				So(text, ShouldNotContainSubstring, "restraint")
				So(text, ShouldNotContainSubstring, "inquiries")
			})
		})

		Convey("When the profile is weak across the board", func() {
			text := adv.Insight(model.Factors{
				PaymentHistory:    40,
				CreditUtilization: 90,
				LengthOfHistory:   30,
				CreditMix:         20,
				NewCredit:         10,
			}, 450)

			Convey("Then every condition sentence should be present", func() {
				So(text, ShouldStartWith, "Your score sits in the poor range")
				So(text, ShouldContainSubstring, "High utilization")
				So(text, ShouldContainSubstring, "late payments")
				So(text, ShouldContainSubstring, "short credit history")
				So(text, ShouldContainSubstring, "inquiries")
			})
		})

		Convey("When new-credit restraint is strong", func() {
			text := adv.Insight(model.Factors{
				PaymentHistory:    95,
				CreditUtilization: 20,
				LengthOfHistory:   80,
				CreditMix:         80,
				NewCredit:         90,
			}, 820)

			Convey("Then the restraint sentence should be present", func() {
				So(text, ShouldStartWith, "Your score is excellent")
				So(text, ShouldContainSubstring, "restraint")
			})
		})

		Convey("When sentences are joined", func() {
			text := adv.Insight(model.Factors{
				PaymentHistory:    40,
				CreditUtilization: 90,
				LengthOfHistory:   30,
				CreditMix:         20,
				NewCredit:         10,
			}, 450)

			Convey("Then there should be exactly one space between them", func() {
				So(strings.Contains(text, "  "), ShouldBeFalse)
			})
		})
	})

	Convey("Given an advisor with new-credit caution disabled", t, func() {
		adv := NewAdvisor(WithNewCreditCaution(false))

		Convey("When new credit is far below target", func() {
			text := adv.Insight(model.Factors{
				PaymentHistory:    85,
				CreditUtilization: 20,
				LengthOfHistory:   80,
				CreditMix:         80,
				NewCredit:         10,
			}, 760)

			Convey("Then the inquiry sentence should be suppressed", func() {
				So(text, ShouldNotContainSubstring, "inquiries")
			})
		})
	})
}

func TestInsightWithForecast(t *testing.T) {
	Convey("Given an advisor", t, func() {
		adv := NewAdvisor()

		Convey("When a forecast narrative is requested", func() {
			text := adv.InsightWithForecast(model.Factors{
				PaymentHistory:    85,
				CreditUtilization: 70,
				LengthOfHistory:   65,
				CreditMix:         75,
				NewCredit:         60,
			}, 707, 745, 6)

			Convey("Then it should close with the projection sentence", func() {
				So(text, ShouldEndWith, "projects a score of 745 within 6 months.")
			})

			Convey("And it should keep the tier opening", func() {
				So(text, ShouldStartWith, "Your score is good")
			})
		})
	})
}
