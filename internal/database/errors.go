package database

import "errors"

// ErrConnect marks failures to build the MongoDB client. Startup treats it as fatal.
var ErrConnect = errors.New("database connect failed")
