package api

import (
	"io"
	"net/http"

	"github.com/okian/authapi/pkg/logger"
)

// Fixed bodies for the greeting and the catch-all.
const (
	greeting        = "Hello World!"
	notFoundMessage = "Route not found"
)

// RootHandler serves GET /api/.
type RootHandler struct {
	logger logger.Logger
}

// NewRootHandler creates a new root handler.
func NewRootHandler(l logger.Logger) *RootHandler {
	return &RootHandler{logger: l}
}

// HandleRoot writes the greeting.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	logHandler(r, h.logger, "root")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, greeting)
}

// HandleNotFound is the catch-all for unmatched paths and methods.
func HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, notFoundMessage)
}

func logHandler(r *http.Request, l logger.Logger, name string) {
	l.Info(r.Context(), "handler",
		logger.String("handler", name),
		logger.String("request_id", RequestIDFromContext(r.Context())),
	)
}
