package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/okian/authapi/internal/adapters/http/api"
	"github.com/okian/authapi/internal/adapters/http/swagger"
	app "github.com/okian/authapi/internal/app"
	"github.com/okian/authapi/internal/config"
	"github.com/okian/authapi/internal/database"
	"github.com/okian/authapi/pkg/logger"
	"github.com/okian/authapi/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	disconnectTimeout         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()
	ctx := context.Background()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	dbs, err := database.Connect(ctx, cfg.DatabaseURI,
		database.WithMainDatabase(cfg.DatabaseName),
		database.WithAnalyticsDatabase(cfg.AnalyticsDatabase),
		database.WithLogsDatabase(cfg.LogsDatabase),
	)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to connect to database", logger.Error(err))
		return
	}

	state := app.NewState(ctx, dbs,
		app.WithEnvironment(cfg.Env),
		app.WithLogger(loggerInstance.Named("app")),
	)

	handler := newHandler(ctx, cfg, state, loggerInstance.Named("api"))

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		disconnectCtx, cancel := context.WithTimeout(ctx, disconnectTimeout)
		_ = dbs.Disconnect(disconnectCtx)
		cancel()
		loggerInstance.Fatal(ctx, "failed to bind listener", logger.String("addr", cfg.Addr()), logger.Error(err))
		return
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	loggerInstance.Info(ctx, "listening", logger.String("addr", ln.Addr().String()), logger.String("env", cfg.Env))
	if err := srv.Serve(ln); err != nil {
		loggerInstance.Fatal(ctx, "HTTP server failed", logger.Error(err))
	}
}

// newHandler builds the route table and, when enabled, mounts the docs.
func newHandler(ctx context.Context, cfg *config.Config, state api.StateProvider, l logger.Logger) http.Handler {
	r := api.NewServer(state, api.WithLogger(l)).Routes()
	if cfg.DocsEnabled {
		swagger.Register(ctx, r)
	}
	return r
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
