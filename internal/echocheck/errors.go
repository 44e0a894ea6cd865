package echocheck

import "errors"

// Error constants.
var (
	ErrUnhealthy      = errors.New("service unhealthy")
	ErrMismatch       = errors.New("response did not echo the request")
	ErrRequestsFailed = errors.New("requests failed")
	ErrInvalidConfig  = errors.New("invalid echo check config")
)
