package echocheck

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/authapi/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging installs the global logger writing to both stdout and a file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "echo_check_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the echo check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Auth API Echo Check
===================

A concurrent client that verifies the auth endpoints echo every request
back unchanged and that the fixed routes answer as documented.

Usage:
  go run ./cmd/echo-check [options]

Options:
  -url string
        Base URL of the service (default "http://127.0.0.1:3300")
  -requests int
        Number of credential pairs to submit (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file for check output (default: echo_check_TIMESTAMP.log)
  -verbose
        Log every request
  -help
        Show this help message

Examples:
  # Check a local instance
  go run ./cmd/echo-check

  # Heavier run against another port
  go run ./cmd/echo-check -requests 20000 -workers 32 -url http://127.0.0.1:8080
`)
}
