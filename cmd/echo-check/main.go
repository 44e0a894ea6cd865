package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/authapi/internal/echocheck"
)

// Default configuration constants.
const (
	defaultRequests    = 1000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultCheckWindow = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://127.0.0.1:3300", "Base URL of the service")
		requests = flag.Int("requests", defaultRequests, "Number of credential pairs to submit")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for check output (default: echo_check_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Log every request")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		echocheck.ShowHelp()
		return
	}

	if err := echocheck.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultCheckWindow)
	defer cancel()

	cfg := &echocheck.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  *workers,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	if _, err := echocheck.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Echo check failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
