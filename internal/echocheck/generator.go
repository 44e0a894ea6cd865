package echocheck

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/authapi/pkg/logger"
)

// generateCredentials creates n credential pairs with unique emails.
func generateCredentials(ctx context.Context, n int, stats *Stats) ([]Credentials, error) {
	logger.Get().Info(ctx, "generating credentials", logger.Int("count", n))

	creds := make([]Credentials, n)
	for i := range creds {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		creds[i] = Credentials{
			Email:    uuid.NewString() + "@" + emailDomain,
			Password: uuid.NewString(),
		}
	}

	stats.Generated = len(creds)
	return creds, nil
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
