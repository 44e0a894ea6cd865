package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Variables that point at optional configuration sources.
const (
	ConfigFileEnv = "APP_CONFIG"
	DotenvFileEnv = "APP_DOTENV"
	defaultDotenv = ".env"
)

// envKeys maps recognised environment variables to koanf keys. Anything not
// listed here is ignored.
var envKeys = map[string]string{
	"APP_ENV":            "env",
	"MONGO_URI":          "database_uri",
	"MONGO_DB":           "database_name",
	"MONGO_ANALYTICS_DB": "analytics_database",
	"MONGO_LOGS_DB":      "logs_database",
	"HOST":               "host",
	"PORT":               "port",
	"LOG_LEVEL":          "log_level",
	"DOCS_ENABLED":       "docs_enabled",
}

// Load builds a Config by layering defaults, optional files, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. .env file (APP_DOTENV or ./.env) merged into the process environment
//  3. YAML file if APP_CONFIG is set
//  4. environment variables listed in envKeys
//
// A missing MONGO_URI or MONGO_DB yields ErrMissingRequired.
func Load(_ context.Context) (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrLoadConfig, path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", mapEnv), nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotenv copies a local settings file into the process environment.
// Variables that are already set win; a missing file is not an error.
func loadDotenv() error {
	path := os.Getenv(DotenvFileEnv)
	if path == "" {
		path = defaultDotenv
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: dotenv %s: %v", ErrLoadConfig, path, err)
	}
	return nil
}

// mapEnv translates an environment variable into a koanf key/value pair.
// Returning an empty key drops the variable.
func mapEnv(key, value string) (string, interface{}) {
	name, ok := envKeys[key]
	if !ok {
		return "", nil
	}
	switch name {
	case "port":
		// Unparsable ports fall back to whatever a lower layer set.
		p, err := strconv.ParseUint(strings.TrimSpace(value), 10, 16)
		if err != nil || p == 0 {
			return "", nil
		}
		return name, uint16(p)
	case "docs_enabled":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return "", nil
		}
		return name, b
	}
	return name, value
}

func (c *Config) validate() error {
	switch {
	case strings.TrimSpace(c.DatabaseURI) == "":
		return fmt.Errorf("%w: MONGO_URI must be set", ErrMissingRequired)
	case strings.TrimSpace(c.DatabaseName) == "":
		return fmt.Errorf("%w: MONGO_DB must be set", ErrMissingRequired)
	}
	if c.Env == "" {
		c.Env = DefaultEnv
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	return nil
}
