// Package app holds the application state shared by every HTTP handler.
package app

import (
	"context"

	"github.com/okian/authapi/internal/database"
	"github.com/okian/authapi/pkg/logger"
	"github.com/okian/authapi/pkg/metrics"
)

// State bundles the resolved environment and the database handles. It is
// built once before the listener starts and is only read afterwards, so one
// pointer is shared by all requests without locking.
type State struct {
	env       string
	databases *database.Handles
	logger    logger.Logger
}

// Option applies a configuration option to the State.
type Option func(*State)

// WithEnvironment sets the environment name; empty values are ignored.
func WithEnvironment(env string) Option {
	return func(s *State) {
		if env != "" {
			s.env = env
		}
	}
}

// WithLogger sets a custom logger for the state.
func WithLogger(l logger.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState constructs the State around the given handles.
func NewState(ctx context.Context, dbs *database.Handles, opts ...Option) *State {
	s := &State{
		env:       "development",
		databases: dbs,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	metrics.SetEnvironment(s.env)
	metrics.UpdateDatabaseHandles(s.databases.Len())
	s.logger.Info(ctx, "application state ready",
		logger.String("env", s.env),
		logger.Strings("databases", s.databases.Names()),
	)
	return s
}

// Environment returns the configured environment name.
func (s *State) Environment() string {
	return s.env
}

// Databases returns the shared database handles.
func (s *State) Databases() *database.Handles {
	return s.databases
}

// DatabaseName returns the name of the main database.
func (s *State) DatabaseName() string {
	return s.databases.Main().Name()
}

// DatabaseNames returns the logical handle names.
func (s *State) DatabaseNames() []string {
	return s.databases.Names()
}
