package echocheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/okian/authapi/pkg/logger"
)

// HTTPClient wraps http.Client with the check's timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(cfg *Config) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: cfg.Timeout}}
}

// Get performs a GET request and returns status and body.
func (c *HTTPClient) Get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

// PostJSON performs a POST request with a JSON body.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body interface{}) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

type outcome int

const (
	outcomeEchoed outcome = iota
	outcomeMismatch
	outcomeFailed
)

// submitCredentials posts every pair to register and login through a worker
// pool and checks each response echoes its own request.
func submitCredentials(ctx context.Context, cfg *Config, client *HTTPClient, creds []Credentials, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting credentials", logger.Int("count", len(creds)), logger.Int("workers", cfg.Workers))

	var submitted, echoed, mismatched, failed int64

	workers := minInt(cfg.Workers, len(creds))
	credChan := make(chan Credentials, workers*workerChanFactor)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range credChan {
				for _, action := range []string{"register", "login"} {
					atomic.AddInt64(&submitted, 1)
					switch submitOne(ctx, cfg, client, action, c) {
					case outcomeEchoed:
						atomic.AddInt64(&echoed, 1)
					case outcomeMismatch:
						atomic.AddInt64(&mismatched, 1)
					case outcomeFailed:
						atomic.AddInt64(&failed, 1)
					}
				}
			}
		}()
	}

	go func() {
		defer close(credChan)
		for _, c := range creds {
			select {
			case <-ctx.Done():
				return
			case credChan <- c:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Echoed = int(atomic.LoadInt64(&echoed))
	stats.Mismatched = int(atomic.LoadInt64(&mismatched))
	stats.Failed = int(atomic.LoadInt64(&failed))

	log.Info(ctx, "submission completed",
		logger.Int("echoed", stats.Echoed),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed))
}

func submitOne(ctx context.Context, cfg *Config, client *HTTPClient, action string, c Credentials) outcome {
	path := registerPath
	if action == "login" {
		path = loginPath
	}

	status, body, err := client.PostJSON(ctx, cfg.BaseURL+path, c)
	if err != nil || status != http.StatusOK {
		logger.Get().Debug(ctx, "request failed",
			logger.String("action", action),
			logger.Int("status", status),
			logger.Any("error", err))
		return outcomeFailed
	}

	var resp AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return outcomeMismatch
	}
	if resp.Email != c.Email || resp.Action != action || resp.DB == "" {
		logger.Get().Warn(ctx, "echo mismatch",
			logger.String("action", action),
			logger.String("sent", c.Email),
			logger.String("got", resp.Email),
			logger.String("gotAction", resp.Action))
		return outcomeMismatch
	}
	logger.Get().Debug(ctx, "echo ok", logger.String("action", action), logger.String("email", c.Email))
	return outcomeEchoed
}
