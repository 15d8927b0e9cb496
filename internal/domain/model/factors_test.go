package model_test

import (
	"testing"

	model "github.com/scoresim/scoresim/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestFactors(t *testing.T) {
	convey.Convey("Given a Factors struct", t, func() {
		convey.Convey("When creating factors from the dashboard defaults", func() {
			f := model.Factors{
				PaymentHistory:    85,
				CreditUtilization: 70,
				LengthOfHistory:   65,
				CreditMix:         75,
				NewCredit:         60,
			}

			convey.Convey("Then Values should preserve the axis order", func() {
				convey.So(f.Values(), convey.ShouldResemble, []int{85, 70, 65, 75, 60})
			})

			convey.Convey("And it should report as in range", func() {
				convey.So(f.InRange(), convey.ShouldBeTrue)
			})

			convey.Convey("And clamping should leave it untouched", func() {
				convey.So(f.Clamped(), convey.ShouldResemble, f)
			})
		})

		convey.Convey("When factors spill over the valid bounds", func() {
			f := model.Factors{
				PaymentHistory:    120,
				CreditUtilization: -5,
				LengthOfHistory:   100,
				CreditMix:         0,
				NewCredit:         101,
			}

			convey.Convey("Then InRange should be false", func() {
				convey.So(f.InRange(), convey.ShouldBeFalse)
			})

			convey.Convey("And Clamped should force every factor into [0,100]", func() {
				clamped := f.Clamped()
				convey.So(clamped.PaymentHistory, convey.ShouldEqual, model.FactorMax)
				convey.So(clamped.CreditUtilization, convey.ShouldEqual, model.FactorMin)
				convey.So(clamped.LengthOfHistory, convey.ShouldEqual, 100)
				convey.So(clamped.CreditMix, convey.ShouldEqual, 0)
				convey.So(clamped.NewCredit, convey.ShouldEqual, model.FactorMax)
				convey.So(clamped.InRange(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When asking for the axis labels", func() {
			labels := model.Labels()

			convey.Convey("Then there should be one label per factor", func() {
				convey.So(labels, convey.ShouldHaveLength, 5)
				convey.So(labels[0], convey.ShouldEqual, "Payment History")
				convey.So(labels[4], convey.ShouldEqual, "New Credit")
			})
		})
	})
}
