package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/scoresim/scoresim/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.RedisAddr, convey.ShouldEqual, "localhost:6379")
			convey.So(cfg.MaxSessions, convey.ShouldEqual, 1024)
			convey.So(cfg.SessionTTLMinutes, convey.ShouldEqual, 30)
			convey.So(cfg.SweepIntervalSeconds, convey.ShouldEqual, 60)
		})

		convey.Convey("Then it should seed the factor controls", func() {
			convey.So(cfg.DefaultFactors["payment_history"], convey.ShouldEqual, 85)
			convey.So(cfg.DefaultFactors["credit_utilization"], convey.ShouldEqual, 70)
			convey.So(cfg.DefaultFactors["length_of_history"], convey.ShouldEqual, 65)
			convey.So(cfg.DefaultFactors["credit_mix"], convey.ShouldEqual, 75)
			convey.So(cfg.DefaultFactors["new_credit"], convey.ShouldEqual, 60)
		})

		convey.Convey("Then duration helpers should convert units", func() {
			convey.So(cfg.SessionTTL(), convey.ShouldEqual, 30*time.Minute)
			convey.So(cfg.SweepInterval(), convey.ShouldEqual, time.Minute)
		})
	})
}
