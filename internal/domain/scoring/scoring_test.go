package scoring_test

import (
	"testing"

	"github.com/scoresim/scoresim/internal/domain/model"
	scoring "github.com/scoresim/scoresim/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEngine_Score(t *testing.T) {
	Convey("Given an engine with the default weights", t, func() {
		engine := scoring.NewEngine()

		Convey("When scoring the dashboard default factors", func() {
			f := model.Factors{
				PaymentHistory:    85,
				CreditUtilization: 70,
				LengthOfHistory:   65,
				CreditMix:         75,
				NewCredit:         60,
			}

			Convey("Then the weighted sum should be 0.74", func() {
				So(engine.WeightedSum(f), ShouldAlmostEqual, 0.74, 1e-12)
			})

			Convey("And the score should come out at 707", func() {
				So(engine.Score(f), ShouldEqual, 707)
			})

			Convey("And 707 should classify as Good", func() {
				category, color := scoring.Classify(engine.Score(f))
				So(category, ShouldEqual, scoring.CategoryGood)
				So(color, ShouldEqual, "green")
			})
		})

		Convey("When scoring the boundary vectors", func() {
			zeros := model.Factors{}
			maxed := model.Factors{
				PaymentHistory:    100,
				CreditUtilization: 100,
				LengthOfHistory:   100,
				CreditMix:         100,
				NewCredit:         100,
			}

			Convey("Then all-zero factors should floor at 300", func() {
				So(engine.Score(zeros), ShouldEqual, scoring.ScoreFloor)
			})

			Convey("And all-100 factors should hit the 850 ceiling", func() {
				So(engine.Score(maxed), ShouldEqual, scoring.ScoreCeil)
			})
		})

		Convey("When sweeping every factor through its range", func() {
			Convey("Then every score should stay inside [300, 850]", func() {
				for v := 0; v <= 100; v += 5 {
					f := model.Factors{
						PaymentHistory:    v,
						CreditUtilization: 100 - v,
						LengthOfHistory:   v,
						CreditMix:         100 - v,
						NewCredit:         v,
					}
					score := engine.Score(f)
					So(score, ShouldBeGreaterThanOrEqualTo, scoring.ScoreFloor)
					So(score, ShouldBeLessThanOrEqualTo, scoring.ScoreCeil)
				}
			})
		})

		Convey("When raising a single factor with the others fixed", func() {
			base := model.Factors{
				PaymentHistory:    40,
				CreditUtilization: 40,
				LengthOfHistory:   40,
				CreditMix:         40,
				NewCredit:         40,
			}

			Convey("Then the score should be monotonically non-decreasing", func() {
				bump := []func(model.Factors, int) model.Factors{
					func(f model.Factors, v int) model.Factors { f.PaymentHistory = v; return f },
					func(f model.Factors, v int) model.Factors { f.CreditUtilization = v; return f },
					func(f model.Factors, v int) model.Factors { f.LengthOfHistory = v; return f },
					func(f model.Factors, v int) model.Factors { f.CreditMix = v; return f },
					func(f model.Factors, v int) model.Factors { f.NewCredit = v; return f },
				}
				for _, set := range bump {
					prev := engine.Score(set(base, 0))
					for v := 1; v <= 100; v++ {
						score := engine.Score(set(base, v))
						So(score, ShouldBeGreaterThanOrEqualTo, prev)
						prev = score
					}
				}
			})
		})
	})

	Convey("Given custom weights", t, func() {
		Convey("When the weights are valid and sum to 1.0", func() {
			engine := scoring.NewEngine(scoring.WithWeights(scoring.Weights{
				PaymentHistory: 1.0,
			}))

			Convey("Then only payment history should drive the score", func() {
				f := model.Factors{PaymentHistory: 50, CreditUtilization: 100}
				So(engine.Score(f), ShouldEqual, 575) // 300 + 0.5*550
			})
		})

		Convey("When the weights do not sum to 1.0", func() {
			engine := scoring.NewEngine(scoring.WithWeights(scoring.Weights{
				PaymentHistory: 0.5,
				CreditMix:      0.4,
			}))

			Convey("Then the engine should keep the defaults", func() {
				So(engine.Weights(), ShouldResemble, scoring.DefaultWeights())
			})
		})

		Convey("When a weight is negative", func() {
			engine := scoring.NewEngine(scoring.WithWeights(scoring.Weights{
				PaymentHistory:    1.5,
				CreditUtilization: -0.5,
			}))

			Convey("Then the engine should keep the defaults", func() {
				So(engine.Weights(), ShouldResemble, scoring.DefaultWeights())
			})
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given the classification table", t, func() {
		Convey("When probing the exact cut points", func() {
			cases := []struct {
				score    int
				category string
				color    string
			}{
				{300, scoring.CategoryPoor, "red"},
				{579, scoring.CategoryPoor, "red"},
				{580, scoring.CategoryFair, "orange"},
				{669, scoring.CategoryFair, "orange"},
				{670, scoring.CategoryGood, "green"},
				{739, scoring.CategoryGood, "green"},
				{740, scoring.CategoryVeryGood, "blue"},
				{799, scoring.CategoryVeryGood, "blue"},
				{800, scoring.CategoryExcellent, "purple"},
				{850, scoring.CategoryExcellent, "purple"},
			}

			Convey("Then each score should land in its bucket", func() {
				for _, tc := range cases {
					category, color := scoring.Classify(tc.score)
					So(category, ShouldEqual, tc.category)
					So(color, ShouldEqual, tc.color)
				}
			})
		})

		Convey("When classifying every score in [300, 850]", func() {
			Convey("Then the buckets should form a total non-overlapping partition", func() {
				counts := map[string]int{}
				for score := 300; score <= 850; score++ {
					category, color := scoring.Classify(score)
					So(category, ShouldBeIn, []string{
						scoring.CategoryPoor,
						scoring.CategoryFair,
						scoring.CategoryGood,
						scoring.CategoryVeryGood,
						scoring.CategoryExcellent,
					})
					So(color, ShouldNotBeBlank)
					counts[category]++
				}
				// Bucket widths: Poor 300..579, Fair 580..669, Good 670..739,
				// Very Good 740..799, Excellent 800..850.
				So(counts[scoring.CategoryPoor], ShouldEqual, 280)
				So(counts[scoring.CategoryFair], ShouldEqual, 90)
				So(counts[scoring.CategoryGood], ShouldEqual, 70)
				So(counts[scoring.CategoryVeryGood], ShouldEqual, 60)
				So(counts[scoring.CategoryExcellent], ShouldEqual, 51)
			})
		})
	})
}

func TestProgress(t *testing.T) {
	Convey("Given the progress mapping", t, func() {
		Convey("When converting scores to the progress bar value", func() {
			So(scoring.Progress(850), ShouldEqual, 1.0)
			So(scoring.Progress(425), ShouldAlmostEqual, 0.5, 1e-12)
			So(scoring.Progress(300), ShouldAlmostEqual, 300.0/850.0, 1e-12)
		})

		Convey("When a value escapes the score range", func() {
			Convey("Then progress should clamp to [0,1]", func() {
				So(scoring.Progress(900), ShouldEqual, 1.0)
				So(scoring.Progress(-10), ShouldEqual, 0.0)
			})
		})
	})
}
