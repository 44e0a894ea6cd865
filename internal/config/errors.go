package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingRequired = errors.New("missing required configuration")
	ErrLoadConfig      = errors.New("load config failed")
)
