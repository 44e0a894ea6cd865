package api

import (
	"net/http"
	"time"

	"github.com/okian/authapi/pkg/logger"
)

type userRecord struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

type usersResponse struct {
	Users []userRecord `json:"users"`
	Total int          `json:"total"`
}

// sampleUsers returns a fresh copy of the fixed user records.
func sampleUsers() []userRecord {
	return []userRecord{
		{ID: 1, Name: "John Doe", Email: "john@example.com"},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com"},
	}
}

// UsersHandler serves /api/users. Nothing is read from the database.
type UsersHandler struct {
	logger logger.Logger
	now    func() time.Time
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(l logger.Logger, now func() time.Time) *UsersHandler {
	return &UsersHandler{logger: l, now: now}
}

// HandleList handles GET /api/users/. Query parameters are ignored.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	logHandler(r, h.logger, "get_users")

	users := sampleUsers()
	writeJSON(w, http.StatusOK, usersResponse{Users: users, Total: len(users)})
}

// HandleGet handles GET /api/users/{userId}. The id is accepted but not used
// for lookup: every id, numeric or not, yields the same record.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	logHandler(r, h.logger, "get_user_by_id")

	u := sampleUsers()[0]
	u.CreatedAt = h.now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, u)
}
