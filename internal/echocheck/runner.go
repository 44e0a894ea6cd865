// Package echocheck drives a running auth API with concurrent clients and
// verifies every response echoes the request that produced it.
package echocheck

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/authapi/pkg/logger"
)

// Run executes the complete check. The returned error wraps ErrMismatch when
// any response broke the echo or fixed-content contract, and
// ErrRequestsFailed when requests could not complete.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if cfg == nil || cfg.BaseURL == "" || cfg.Requests <= 0 || cfg.Workers <= 0 {
		return nil, ErrInvalidConfig
	}

	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg)

	logger.Get().Info(ctx, "starting echo check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
		logger.Bool("verbose", cfg.Verbose))

	if err := checkServiceHealth(ctx, cfg, client); err != nil {
		return stats, err
	}

	creds, err := generateCredentials(ctx, cfg.Requests, stats)
	if err != nil {
		return stats, err
	}

	submitCredentials(ctx, cfg, client, creds, stats)

	if err := verifyUsers(ctx, cfg, client); err != nil {
		return finish(stats), err
	}
	if err := verifyNotFound(ctx, cfg, client); err != nil {
		return finish(stats), err
	}

	finish(stats)
	displayFinalStats(ctx, stats)

	switch {
	case stats.Mismatched > 0:
		return stats, fmt.Errorf("%w: %d of %d responses", ErrMismatch, stats.Mismatched, stats.Submitted)
	case stats.Failed > 0:
		return stats, fmt.Errorf("%w: %d of %d requests", ErrRequestsFailed, stats.Failed, stats.Submitted)
	case stats.Submitted < 2*stats.Generated:
		return stats, fmt.Errorf("%w: stopped after %d of %d requests: %v", ErrRequestsFailed, stats.Submitted, 2*stats.Generated, ctx.Err())
	}

	logger.Get().Info(ctx, "echo check passed")
	return stats, nil
}

func finish(stats *Stats) *Stats {
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	return stats
}

// displayFinalStats logs the final check statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var echoRate, requestsPerSecond float64

	if stats.Submitted > 0 {
		echoRate = float64(stats.Echoed) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("echoed", stats.Echoed),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("echoRate", echoRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
