package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/authapi/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When the required database variables are set", func() {
			setRequired()

			cfg, err := config.Load(ctx)

			convey.Convey("Then optional settings fall back to defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DatabaseURI, convey.ShouldEqual, "mongodb://localhost:27017")
				convey.So(cfg.DatabaseName, convey.ShouldEqual, "my_app_db")
				convey.So(cfg.Env, convey.ShouldEqual, "development")
				convey.So(cfg.Port, convey.ShouldEqual, 3300)
				convey.So(cfg.Addr(), convey.ShouldEqual, "127.0.0.1:3300")
			})
		})

		convey.Convey("When MONGO_URI is missing", func() {
			_ = os.Setenv("MONGO_DB", "my_app_db")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail with a missing-required error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrMissingRequired), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "MONGO_URI")
			})
		})

		convey.Convey("When MONGO_DB is missing", func() {
			_ = os.Setenv("MONGO_URI", "mongodb://localhost:27017")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail naming MONGO_DB", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrMissingRequired), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "MONGO_DB")
			})
		})

		convey.Convey("When MONGO_URI is set but blank", func() {
			setRequired()
			_ = os.Setenv("MONGO_URI", "   ")

			_, err := config.Load(ctx)

			convey.Convey("Then it is treated as missing", func() {
				convey.So(errors.Is(err, config.ErrMissingRequired), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When optional variables are set", func() {
			setRequired()
			_ = os.Setenv("APP_ENV", "production")
			_ = os.Setenv("PORT", "8080")
			_ = os.Setenv("HOST", "0.0.0.0")
			_ = os.Setenv("LOG_LEVEL", "debug")
			_ = os.Setenv("MONGO_ANALYTICS_DB", "stats")
			_ = os.Setenv("MONGO_LOGS_DB", "audit")
			_ = os.Setenv("DOCS_ENABLED", "false")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Env, convey.ShouldEqual, "production")
				convey.So(cfg.Port, convey.ShouldEqual, 8080)
				convey.So(cfg.Host, convey.ShouldEqual, "0.0.0.0")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.AnalyticsDatabase, convey.ShouldEqual, "stats")
				convey.So(cfg.LogsDatabase, convey.ShouldEqual, "audit")
				convey.So(cfg.DocsEnabled, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When PORT is not a valid 16-bit port", func() {
			for _, port := range []string{"not-a-port", "70000", "-1", "0", ""} {
				setRequired()
				_ = os.Setenv("PORT", port)

				cfg, err := config.Load(ctx)

				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, 3300)
			}
		})

		convey.Convey("When unrelated variables are present", func() {
			setRequired()
			_ = os.Setenv("DATABASE_URI", "ignored")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they are ignored", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DatabaseURI, convey.ShouldEqual, "mongodb://localhost:27017")
			})
		})
	})
}

func TestConfigLoaderFiles(t *testing.T) {
	convey.Convey("Given optional configuration files", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When a .env file provides the required values", func() {
			path := createTempFile("authapi-*.env", "MONGO_URI=mongodb://dotenv:27017\nMONGO_DB=from_dotenv\nPORT=4000\n")
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("APP_DOTENV", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then the values are loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DatabaseURI, convey.ShouldEqual, "mongodb://dotenv:27017")
				convey.So(cfg.DatabaseName, convey.ShouldEqual, "from_dotenv")
				convey.So(cfg.Port, convey.ShouldEqual, 4000)
			})
		})

		convey.Convey("When the environment and the .env file disagree", func() {
			path := createTempFile("authapi-*.env", "MONGO_URI=mongodb://dotenv:27017\nMONGO_DB=from_dotenv\n")
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("APP_DOTENV", path)
			_ = os.Setenv("MONGO_DB", "from_env")

			cfg, err := config.Load(ctx)

			convey.Convey("Then the process environment wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DatabaseName, convey.ShouldEqual, "from_env")
			})
		})

		convey.Convey("When the .env file does not exist", func() {
			setRequired()
			_ = os.Setenv("APP_DOTENV", "/non/existent/.env")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it is not an error", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a YAML file is provided", func() {
			yamlContent := `
env: staging
database_uri: "mongodb://yaml:27017"
database_name: yaml_db
port: 9090
`
			path := createTempFile("authapi-*.yaml", yamlContent)
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("APP_CONFIG", path)
			_ = os.Setenv("PORT", "8081")

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values load and env still wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Env, convey.ShouldEqual, "staging")
				convey.So(cfg.DatabaseURI, convey.ShouldEqual, "mongodb://yaml:27017")
				convey.So(cfg.DatabaseName, convey.ShouldEqual, "yaml_db")
				convey.So(cfg.Port, convey.ShouldEqual, 8081)
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			setRequired()
			path := createTempFile("authapi-*.yaml", `invalid: yaml: content: [`)
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("APP_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML file does not exist", func() {
			setRequired()
			_ = os.Setenv("APP_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

var configEnvVars = []string{
	"APP_CONFIG",
	"APP_DOTENV",
	"APP_ENV",
	"MONGO_URI",
	"MONGO_DB",
	"MONGO_ANALYTICS_DB",
	"MONGO_LOGS_DB",
	"HOST",
	"PORT",
	"LOG_LEVEL",
	"DOCS_ENABLED",
	"DATABASE_URI",
}

func clearConfigEnvVars() {
	for _, envVar := range configEnvVars {
		_ = os.Unsetenv(envVar)
	}
	// Keep a stray ./.env from leaking into the tests.
	_ = os.Setenv("APP_DOTENV", "/non/existent/.env")
}

func setRequired() {
	_ = os.Setenv("MONGO_URI", "mongodb://localhost:27017")
	_ = os.Setenv("MONGO_DB", "my_app_db")
}

func createTempFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
