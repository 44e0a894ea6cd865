package database

import "time"

// Logical handle names shared by every Handles value.
const (
	Main      = "main"
	Analytics = "analytics"
	Logs      = "logs"
)

// Option configures Connect.
type Option func(*settings)

type settings struct {
	names                  map[string]string
	appName                string
	serverSelectionTimeout time.Duration
}

func defaultSettings() settings {
	return settings{
		names: map[string]string{
			Analytics: "analytics_db",
			Logs:      "logs_db",
		},
		appName: "authapi",
	}
}

// WithMainDatabase sets the database behind the "main" handle.
func WithMainDatabase(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.names[Main] = name
		}
	}
}

// WithAnalyticsDatabase sets the database behind the "analytics" handle.
func WithAnalyticsDatabase(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.names[Analytics] = name
		}
	}
}

// WithLogsDatabase sets the database behind the "logs" handle.
func WithLogsDatabase(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.names[Logs] = name
		}
	}
}

// WithAppName sets the application name reported to the server.
func WithAppName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.appName = name
		}
	}
}

// WithServerSelectionTimeout bounds how long an operation waits for a server.
func WithServerSelectionTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.serverSelectionTimeout = d
		}
	}
}
