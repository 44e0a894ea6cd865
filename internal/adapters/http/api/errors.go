package api

import "errors"

// Sentinel kinds for request body failures.
var (
	ErrBadRequest           = errors.New("bad request")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrUnprocessable        = errors.New("unprocessable entity")
	ErrBodyTooLarge         = errors.New("request body too large")
)
