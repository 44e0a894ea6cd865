// Package config defines service configuration and its loading.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers an optional .env file, an optional YAML file and the
//   process environment on top of those defaults.
// - Errors wrap this package's sentinels so callers can use errors.Is.
package config

import (
	"net"
	"strconv"
)

// Default values applied when the environment leaves a setting unset.
const (
	DefaultEnv               = "development"
	DefaultHost              = "127.0.0.1"
	DefaultPort       uint16 = 3300
	DefaultAnalyticsDatabase = "analytics_db"
	DefaultLogsDatabase      = "logs_db"
)

// Config contains process configuration. It is built once at startup and
// treated as read-only afterwards.
type Config struct {
	// Env names the deployment environment, e.g. "development".
	Env string `koanf:"env"`

	// DatabaseURI is the MongoDB connection string. Required.
	DatabaseURI string `koanf:"database_uri"`

	// DatabaseName is the main logical database. Required.
	DatabaseName string `koanf:"database_name"`

	// AnalyticsDatabase and LogsDatabase name the secondary logical databases.
	AnalyticsDatabase string `koanf:"analytics_database"`
	LogsDatabase      string `koanf:"logs_database"`

	// Host and Port form the listen address.
	Host string `koanf:"host"`
	Port uint16 `koanf:"port"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DocsEnabled mounts the ReDoc UI and the OpenAPI document.
	DocsEnabled bool `koanf:"docs_enabled"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		Env:               DefaultEnv,
		AnalyticsDatabase: DefaultAnalyticsDatabase,
		LogsDatabase:      DefaultLogsDatabase,
		Host:              DefaultHost,
		Port:              DefaultPort,
		LogLevel:          "info",
		DocsEnabled:       true,
	}
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}
