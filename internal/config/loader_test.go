package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"futbol-tracker/internal/config"

	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"FT_CONFIG", "FT_ADDR", "FT_API_KEY", "FT_MODEL", "FT_COMPLETION_PROVIDER",
	"FT_REQUEST_TIMEOUT", "FT_MIN_EVENTS", "FT_STORAGE", "FT_REDIS_URL",
	"FT_VERIFY_CREDENTIAL", "GOOGLE_API_KEY", "OPENAI_API_KEY",
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars(t)

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then defaults apply and the missing key is fatal", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Provider, convey.ShouldEqual, config.ProviderGemini)
				convey.So(cfg.Storage, convey.ShouldEqual, config.StorageMemory)
				convey.So(cfg.MinEvents, convey.ShouldEqual, 1)
				convey.So(cfg.RequestTimeout, convey.ShouldEqual, 60*time.Second)
				convey.So(cfg.VerifyCredential, convey.ShouldBeTrue)
				convey.So(errors.Is(cfg.Validate(), config.ErrMissingAPIKey), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When GOOGLE_API_KEY is set", func() {
			t.Setenv("GOOGLE_API_KEY", "g-key")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it is used as the gemini credential", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.APIKey, convey.ShouldEqual, "g-key")
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When FT_ variables are set", func() {
			t.Setenv("FT_ADDR", ":9090")
			t.Setenv("FT_API_KEY", "ft-key")
			t.Setenv("GOOGLE_API_KEY", "ignored")
			t.Setenv("FT_COMPLETION_PROVIDER", "OpenAI")
			t.Setenv("FT_REQUEST_TIMEOUT", "15s")
			t.Setenv("FT_MIN_EVENTS", "3")
			t.Setenv("FT_VERIFY_CREDENTIAL", "false")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.APIKey, convey.ShouldEqual, "ft-key")
				convey.So(cfg.Provider, convey.ShouldEqual, config.ProviderOpenAI)
				convey.So(cfg.RequestTimeout, convey.ShouldEqual, 15*time.Second)
				convey.So(cfg.MinEvents, convey.ShouldEqual, 3)
				convey.So(cfg.VerifyCredential, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading a YAML file", func() {
			path := writeTempConfig(t, `
addr: ":7070"
api_key: "yaml-key"
model: "gemini-1.5-pro"
storage: "redis"
redis_url: "redis://localhost:6379/0"
session_ttl: "30m"
`)
			t.Setenv("FT_CONFIG", path)
			t.Setenv("FT_ADDR", ":6060")

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values load and env still wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.APIKey, convey.ShouldEqual, "yaml-key")
				convey.So(cfg.Model, convey.ShouldEqual, "gemini-1.5-pro")
				convey.So(cfg.Storage, convey.ShouldEqual, config.StorageRedis)
				convey.So(cfg.SessionTTL, convey.ShouldEqual, 30*time.Minute)
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the YAML file does not exist", func() {
			t.Setenv("FT_CONFIG", "/nonexistent/futbol-tracker.yaml")

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given an otherwise valid config", t, func() {
		cfg := config.New()
		cfg.APIKey = "k"
		convey.So(cfg.Validate(), convey.ShouldBeNil)

		convey.Convey("Unknown provider and storage are rejected", func() {
			cfg.Provider = "claude"
			cfg.Storage = "sqlite"
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "completion_provider")
			convey.So(err.Error(), convey.ShouldContainSubstring, "storage")
		})

		convey.Convey("Redis and postgres need their connection strings", func() {
			cfg.Storage = config.StorageRedis
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			cfg.Storage = config.StoragePostgres
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			cfg.DBDSN = "postgres://localhost/ft"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("min_events below one is rejected", func() {
			cfg.MinEvents = 0
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range configEnvVars {
		// t.Setenv restaura el valor original al terminar el test.
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "ft-*.yaml")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	_ = f.Close()
	return f.Name()
}
