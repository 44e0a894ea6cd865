// Package api declares the HTTP route table and its handlers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/authapi/pkg/logger"
)

// StateProvider is the read-only application state the handlers need.
type StateProvider interface {
	Environment() string
	DatabaseName() string
	DatabaseNames() []string
}

// Server wires HTTP routes for the business API.
type Server struct {
	state  StateProvider
	logger logger.Logger
	now    func() time.Time

	authHandler   *AuthHandler
	usersHandler  *UsersHandler
	rootHandler   *RootHandler
	healthHandler *HealthHandler
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger handlers write their access line to.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for generated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(state StateProvider, opts ...Option) *Server {
	s := &Server{
		state:  state,
		logger: logger.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.authHandler = NewAuthHandler(state, s.logger)
	s.usersHandler = NewUsersHandler(s.logger, s.now)
	s.rootHandler = NewRootHandler(s.logger)
	s.healthHandler = NewHealthHandler(state)
	return s
}

// Routes builds the route table. Every business route lives under /api;
// anything unmatched, including a known path with the wrong method, gets
// the plain-text 404. HEAD is answered by the matching GET route.
// MetricsMiddleware sits outside Recoverer so recovered panics are counted.
func (s *Server) Routes() chi.Router {
	r := newRouter()

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Method(http.MethodGet, "/metrics", s.healthHandler.MetricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.authHandler.HandleLogin)
			r.Post("/register", s.authHandler.HandleRegister)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.usersHandler.HandleList)
			r.Get("/{userId}", s.usersHandler.HandleGet)
		})
		r.Get("/", s.rootHandler.HandleRoot)
	})

	return r
}

// newRouter returns a router carrying the shared middleware chain and the
// catch-all, with no routes yet.
func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(middleware.GetHead)

	r.NotFound(HandleNotFound)
	r.MethodNotAllowed(HandleNotFound)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
