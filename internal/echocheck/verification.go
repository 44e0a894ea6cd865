package echocheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/okian/authapi/pkg/logger"
)

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, cfg *Config, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	status, _, err := client.Get(ctx, cfg.BaseURL+healthPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// verifyUsers checks the listing always carries the two fixed records.
func verifyUsers(ctx context.Context, cfg *Config, client *HTTPClient) error {
	status, body, err := client.Get(ctx, cfg.BaseURL+usersPath)
	if err != nil {
		return fmt.Errorf("%w: users: %v", ErrRequestsFailed, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: users: status %d", ErrMismatch, status)
	}

	var resp UsersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: users: %v", ErrMismatch, err)
	}
	if len(resp.Users) != expectedUsers || resp.Total != expectedUsers {
		return fmt.Errorf("%w: users: got %d records, total %d", ErrMismatch, len(resp.Users), resp.Total)
	}
	return nil
}

// verifyNotFound checks an undeclared path gets the plain 404.
func verifyNotFound(ctx context.Context, cfg *Config, client *HTTPClient) error {
	status, body, err := client.Get(ctx, cfg.BaseURL+"/"+uuid.NewString())
	if err != nil {
		return fmt.Errorf("%w: not found: %v", ErrRequestsFailed, err)
	}
	if status != http.StatusNotFound || string(body) != notFoundBody {
		return fmt.Errorf("%w: not found: status %d body %q", ErrMismatch, status, body)
	}
	return nil
}
