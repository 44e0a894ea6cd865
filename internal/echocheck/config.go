package echocheck

import "time"

// Config holds configuration for the echo check.
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of credential pairs to submit
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for check output
	Verbose  bool          // Enable per-request logging
}

// Credentials is the body posted to both auth endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the echo returned by register and login.
type AuthResponse struct {
	Action string `json:"action"`
	Email  string `json:"email"`
	DB     string `json:"db"`
	Env    string `json:"env,omitempty"`
}

// UsersResponse is the body of the users listing.
type UsersResponse struct {
	Users []struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"users"`
	Total int `json:"total"`
}

// Stats holds check statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Echoed     int
	Mismatched int
	Failed     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
