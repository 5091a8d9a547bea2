package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okita/worklogd/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
				convey.So(cfg.Storage, convey.ShouldEqual, config.StorageSQLite)
				convey.So(cfg.SQLiteDSN, convey.ShouldEqual, "worklog.db")
				convey.So(cfg.MaxRecentLimit, convey.ShouldEqual, 200)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("WORKLOG_ADDR", ":8080")
			_ = os.Setenv("WORKLOG_STORAGE", "csv")
			_ = os.Setenv("WORKLOG_CSV_PATH", "rows.csv")
			_ = os.Setenv("WORKLOG_MAX_RECENT_LIMIT", "50")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Storage, convey.ShouldEqual, config.StorageCSV)
				convey.So(cfg.CSVPath, convey.ShouldEqual, "rows.csv")
				convey.So(cfg.MaxRecentLimit, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()

			dir := t.TempDir()
			path := filepath.Join(dir, "worklog.yaml")
			yaml := "addr: \":7070\"\nstorage: memory\nlog_level: debug\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("WORKLOG_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.Storage, convey.ShouldEqual, config.StorageMemory)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When the storage backend is unknown", func() {
			clearConfigEnvVars()
			_ = os.Setenv("WORKLOG_STORAGE", "dynamo")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fail with ErrInvalidConfig", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"WORKLOG_CONFIG",
		"WORKLOG_ADDR",
		"WORKLOG_LOG_LEVEL",
		"WORKLOG_STORAGE",
		"WORKLOG_SQLITE_DSN",
		"WORKLOG_CSV_PATH",
		"WORKLOG_MAX_RECENT_LIMIT",
	} {
		_ = os.Unsetenv(key)
	}
}
