package forecast

import (
	"errors"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/scoresim/scoresim/internal/domain/model"
)

// fixedSource always yields the same Int63 value, pinning the jitter draw.
// Int63 = 1<<62 maps to Float64() = 0.5, which is a zero offset.
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64)   {}

func startingFactors() model.Factors {
	return model.Factors{
		PaymentHistory:    85,
		CreditUtilization: 70,
		LengthOfHistory:   65,
		CreditMix:         75,
		NewCredit:         60,
	}
}

func TestProject(t *testing.T) {
	Convey("Given a projector with a zero-offset source", t, func() {
		p := NewProjector(WithSource(fixedSource{v: 1 << 62}))

		Convey("When the starting factors are projected at rate 10", func() {
			got, err := p.Project(startingFactors(), 6, 10)

			Convey("Then each factor should move by rate times its multiplier", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, model.Factors{
					PaymentHistory:    93,
					CreditUtilization: 65,
					LengthOfHistory:   68,
					CreditMix:         77,
					NewCredit:         61,
				})
			})
		})

		Convey("When factors sit at the range edges with the maximum rate", func() {
			got, err := p.Project(model.Factors{
				PaymentHistory:    100,
				CreditUtilization: 0,
				LengthOfHistory:   100,
				CreditMix:         100,
				NewCredit:         100,
			}, 12, 20)

			Convey("Then projections should clamp into the factor range", func() {
				So(err, ShouldBeNil)
				So(got.PaymentHistory, ShouldEqual, 100)
				So(got.CreditUtilization, ShouldEqual, 0)
				So(got.LengthOfHistory, ShouldEqual, 100)
				So(got.CreditMix, ShouldEqual, 100)
				So(got.NewCredit, ShouldEqual, 100)
			})
		})

		Convey("When the horizon is out of range", func() {
			_, errLow := p.Project(startingFactors(), MonthsMin-1, 10)
			_, errHigh := p.Project(startingFactors(), MonthsMax+1, 10)

			Convey("Then both ends should be rejected", func() {
				So(errors.Is(errLow, ErrMonthsOutOfRange), ShouldBeTrue)
				So(errors.Is(errHigh, ErrMonthsOutOfRange), ShouldBeTrue)
			})
		})

		Convey("When the rate is out of range", func() {
			_, errLow := p.Project(startingFactors(), 6, RateMin-1)
			_, errHigh := p.Project(startingFactors(), 6, RateMax+1)

			Convey("Then both ends should be rejected", func() {
				So(errors.Is(errLow, ErrRateOutOfRange), ShouldBeTrue)
				So(errors.Is(errHigh, ErrRateOutOfRange), ShouldBeTrue)
			})
		})

		Convey("When the controls sit exactly on their bounds", func() {
			_, errA := p.Project(startingFactors(), MonthsMin, RateMin)
			_, errB := p.Project(startingFactors(), MonthsMax, RateMax)

			Convey("Then both should be accepted", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
			})
		})
	})

	Convey("Given a projector pinned to the most negative offset", t, func() {
		p := NewProjector(WithSource(fixedSource{v: 0}))

		Convey("When the starting factors are projected at rate 10", func() {
			got, err := p.Project(startingFactors(), 6, 10)

			Convey("Then every factor should carry the shared -2 offset", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, model.Factors{
					PaymentHistory:    91,
					CreditUtilization: 63,
					LengthOfHistory:   66,
					CreditMix:         75,
					NewCredit:         59,
				})
			})
		})
	})

	Convey("Given a projector pinned to a +0.5 offset", t, func() {
		// Int63 = 5<<60 maps to Float64() = 0.625, which is a +0.5 offset.
		p := NewProjector(WithSource(fixedSource{v: 5 << 60}))

		Convey("When a factor lands on a half value at rate 0", func() {
			got, err := p.Project(model.Factors{
				PaymentHistory:    50,
				CreditUtilization: 50,
				LengthOfHistory:   50,
				CreditMix:         50,
				NewCredit:         50,
			}, 6, 0)

			Convey("Then halves should round away from zero", func() {
				So(err, ShouldBeNil)
				So(got.PaymentHistory, ShouldEqual, 51)
			})
		})
	})

	Convey("Given two projectors seeded identically", t, func() {
		a := NewProjector(WithSource(rand.NewSource(42)))
		b := NewProjector(WithSource(rand.NewSource(42)))

		Convey("When both project the same inputs", func() {
			gotA, errA := a.Project(startingFactors(), 9, 15)
			gotB, errB := b.Project(startingFactors(), 9, 15)

			Convey("Then the projections should match", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(gotA, ShouldResemble, gotB)
			})
		})
	})

	Convey("Given a projector with the default source", t, func() {
		p := NewProjector()

		Convey("When a mid-range factor is projected repeatedly at rate 0", func() {
			inRange := true
			for i := 0; i < 100; i++ {
				got, err := p.Project(model.Factors{
					PaymentHistory:    50,
					CreditUtilization: 50,
					LengthOfHistory:   50,
					CreditMix:         50,
					NewCredit:         50,
				}, 6, 0)
				So(err, ShouldBeNil)
				if got.PaymentHistory < 48 || got.PaymentHistory > 52 {
					inRange = false
				}
			}

			Convey("Then every projection should stay within the jitter span", func() {
				So(inRange, ShouldBeTrue)
			})
		})
	})
}
