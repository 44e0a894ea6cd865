package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/okian/authapi/pkg/logger"
	"github.com/okian/authapi/pkg/metrics"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 2 << 20

// AuthDependencies is the state the auth handlers reflect back.
type AuthDependencies interface {
	Environment() string
	DatabaseName() string
}

// LoginRequest is the body of both register and login. Credentials are
// neither checked nor stored.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Action string `json:"action"`
	Email  string `json:"email"`
	DB     string `json:"db"`
	Env    string `json:"env"`
}

type loginResponse struct {
	Action string `json:"action"`
	Email  string `json:"email"`
	DB     string `json:"db"`
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	deps   AuthDependencies
	logger logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(deps AuthDependencies, l logger.Logger) *AuthHandler {
	return &AuthHandler{deps: deps, logger: l}
}

// HandleRegister handles POST /api/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLoginRequest(w, r)
	if !ok {
		return
	}
	logHandler(r, h.logger, "register")
	metrics.RecordAuthRequest("register")

	writeJSON(w, http.StatusOK, registerResponse{
		Action: "register",
		Email:  req.Email,
		DB:     h.deps.DatabaseName(),
		Env:    h.deps.Environment(),
	})
}

// HandleLogin handles POST /api/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLoginRequest(w, r)
	if !ok {
		return
	}
	logHandler(r, h.logger, "login")
	metrics.RecordAuthRequest("login")

	writeJSON(w, http.StatusOK, loginResponse{
		Action: "login",
		Email:  req.Email,
		DB:     h.deps.DatabaseName(),
	})
}

// decodeLoginRequest reads a LoginRequest and writes the rejection itself
// when the body is unusable:
//
//	415 content type is not JSON
//	413 body over maxBodyBytes
//	400 empty, non-UTF-8 or syntactically broken JSON, or trailing data
//	422 valid JSON of the wrong shape (wrong types, missing or null fields)
func decodeLoginRequest(w http.ResponseWriter, r *http.Request) (LoginRequest, bool) {
	const op = "api.decode_login_request"

	if !isJSONContentType(r.Header.Get("Content-Type")) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type",
			fmt.Errorf("%s: %w: expected application/json", op, ErrUnsupportedMediaType))
		return LoginRequest{}, false
	}

	var body struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeDecodeError(w, op, err)
		return LoginRequest{}, false
	}
	// encoding/json would substitute U+FFFD and break the echo.
	if !utf8.Valid(raw) {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%s: %w: body is not valid UTF-8", op, ErrBadRequest))
		return LoginRequest{}, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&body); err != nil {
		writeDecodeError(w, op, err)
		return LoginRequest{}, false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%s: %w: trailing data after JSON body", op, ErrBadRequest))
		return LoginRequest{}, false
	}

	switch {
	case body.Email == nil:
		writeError(w, http.StatusUnprocessableEntity, "unprocessable_entity",
			fmt.Errorf("%s: %w: missing field `email`", op, ErrUnprocessable))
		return LoginRequest{}, false
	case body.Password == nil:
		writeError(w, http.StatusUnprocessableEntity, "unprocessable_entity",
			fmt.Errorf("%s: %w: missing field `password`", op, ErrUnprocessable))
		return LoginRequest{}, false
	}
	return LoginRequest{Email: *body.Email, Password: *body.Password}, true
}

func writeDecodeError(w http.ResponseWriter, op string, err error) {
	var (
		typeErr *json.UnmarshalTypeError
		sizeErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &sizeErr):
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large",
			fmt.Errorf("%s: %w", op, ErrBodyTooLarge))
	case errors.As(err, &typeErr):
		writeError(w, http.StatusUnprocessableEntity, "unprocessable_entity",
			fmt.Errorf("%s: %w: %s", op, ErrUnprocessable, describeTypeError(typeErr)))
	default:
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
	}
}

// describeTypeError names the offending field without leaking Go type names.
func describeTypeError(err *json.UnmarshalTypeError) string {
	if err.Field == "" {
		return fmt.Sprintf("body must be a JSON object, got %s", err.Value)
	}
	return fmt.Sprintf("field `%s` must be a string, got %s", err.Field, err.Value)
}

func isJSONContentType(v string) bool {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return false
	}
	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}
