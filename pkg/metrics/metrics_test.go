package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})

			Convey("Then its metrics should land on the custom registry", func() {
				RecordEvaluation()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})

		Convey("When ignoring empty option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording evaluation metrics", func() {
			Convey("Then it should record evaluations", func() {
				So(func() {
					RecordEvaluation()
					RecordScore(707)
					RecordScoreCategory("Good")
					RecordRecommendationCount(2)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording forecast metrics", func() {
			Convey("Then it should record forecasts and deltas", func() {
				So(func() {
					RecordForecast()
					RecordForecastDelta(38)
					RecordForecastDelta(-12)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording session store metrics", func() {
			Convey("Then it should record store activity", func() {
				So(func() {
					RecordHistorySave()
					UpdateActiveSessions(3)
					UpdateHistoryEntries(12)
					IncrementSessionsExpired(2)
					IncrementSessionsEvicted()
					RecordStoreUpdateLatency(1.5)
					RecordStoreQueryLatency(0.4)
					RecordStoreError("memory", "not_found")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record requests and durations", func() {
				So(func() {
					RecordHTTPRequest("/evaluate", "POST", "200")
					RecordHTTPRequestDuration("/evaluate", "POST", "200", 12.5)
					RecordErrorByEndpoint("/forecast", "POST", "bad_request")
					RecordErrorByComponent("app", "forecast")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should record system state", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024 * 1024)
					UpdateSystemGoroutineCount(42)
					RecordSystemGCPauseTime(0.25)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		Convey("When gathering after recording", func() {
			RecordEvaluation()
			RecordScore(707)
			families, err := GetRegistry().Gather()

			Convey("Then the expected families should be present", func() {
				So(err, ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["scoresim_credit_evaluations_total"], ShouldBeTrue)
				So(names["scoresim_credit_score_distribution"], ShouldBeTrue)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent metric recording", t, func() {
		Convey("When many goroutines record at once", func() {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 100; j++ {
						RecordEvaluation()
						RecordScore(650)
						RecordHTTPRequest("/evaluate", "POST", "200")
						UpdateActiveSessions(j)
					}
				}()
			}

			Convey("Then recording should finish without panicking", func() {
				So(func() { wg.Wait() }, ShouldNotPanic)
			})
		})
	})
}
