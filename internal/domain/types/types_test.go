package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/scoresim/scoresim/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFactorSet(t *testing.T) {
	Convey("Given a FactorSet", t, func() {
		fs := types.FactorSet{
			PaymentHistory:    85,
			CreditUtilization: 70,
			LengthOfHistory:   65,
			CreditMix:         75,
			NewCredit:         60,
		}

		Convey("When marshaling to JSON", func() {
			data, err := json.Marshal(fs)

			Convey("Then it should use the wire field names", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"payment_history":85`)
				So(string(data), ShouldContainSubstring, `"credit_utilization":70`)
				So(string(data), ShouldContainSubstring, `"new_credit":60`)
			})
		})
	})
}

func TestForecastShape(t *testing.T) {
	Convey("Given a Forecast", t, func() {
		f := types.Forecast{
			CurrentScore:   711,
			PredictedScore: 723,
			Delta:          12,
			DeltaLabel:     "+12",
			Months:         6,
			Trend: []types.TrendPoint{
				{Seq: 0, Score: 711},
				{Seq: 6, Score: 723},
			},
		}

		Convey("When marshaling to JSON", func() {
			data, err := json.Marshal(f)

			Convey("Then the delta label should carry the explicit sign", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"delta_label":"+12"`)
			})

			Convey("And the trend should hold exactly the two endpoints", func() {
				So(f.Trend, ShouldHaveLength, 2)
				So(f.Trend[0].Score, ShouldEqual, f.CurrentScore)
				So(f.Trend[1].Score, ShouldEqual, f.PredictedScore)
			})
		})
	})
}
