package echocheck

// Paths exercised by the check.
const (
	healthPath   = "/healthz"
	registerPath = "/api/auth/register"
	loginPath    = "/api/auth/login"
	usersPath    = "/api/users/"
)

// Expected fixed responses.
const (
	expectedUsers    = 2
	notFoundBody     = "Route not found"
	emailDomain      = "echo-check.example"
	workerChanFactor = 2
)

// PercentageMultiplier converts ratios to percentages.
const PercentageMultiplier = 100
