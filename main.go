// Feedly MCP Server - A Model Context Protocol server for the Feedly cloud API
// Provides tools for listing subscriptions, reading streams and marking entries
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olgasafonova/feedly-go/feedly"
	"github.com/olgasafonova/feedly-go/tools"
	"github.com/olgasafonova/feedly-go/tracing"
)

const (
	ServerName    = "feedly-mcp-server"
	ServerVersion = "1.0.0"
)

// ServerConfig holds process-level settings. Feedly client settings live in feedly.Config.
type ServerConfig struct {
	// MetricsAddr serves /metrics when set, e.g. ":9090"
	MetricsAddr string `envconfig:"METRICS_ADDR"`

	// CircuitBreaker enables fail-fast after repeated Feedly outages
	CircuitBreaker bool `envconfig:"CIRCUIT_BREAKER" default:"false"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// loadServerConfig reads FEEDLY_METRICS_ADDR, FEEDLY_CIRCUIT_BREAKER and FEEDLY_LOG_LEVEL
func loadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process(feedly.EnvPrefix, &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("load server config: %w", err)
	}
	return cfg, nil
}

// recoverPanic wraps a function with panic recovery and returns an error instead of crashing
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	serverCfg, err := loadServerConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(serverCfg.LogLevel),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, serverCfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, serverCfg ServerConfig, logger *slog.Logger) error {
	cfg, err := feedly.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.AccessToken == "" {
		logger.Warn("FEEDLY_ACCESS_TOKEN is not set; requests will be sent without authorization")
	}

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	client, err := newClient(cfg, serverCfg, logger)
	if err != nil {
		return err
	}

	if serverCfg.MetricsAddr != "" {
		srv := newMetricsServer(serverCfg.MetricsAddr)
		go func() {
			defer recoverPanic(logger, "metrics_server")
			logger.Info("Serving metrics", "addr", serverCfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	server := newServer(client, logger)

	logger.Info("Starting Feedly MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"base_url", client.BaseURL(),
		"circuit_breaker", client.CircuitBreakerStats().State,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}

func newClient(cfg feedly.Config, serverCfg ServerConfig, logger *slog.Logger) (*feedly.Client, error) {
	opts := []feedly.ClientOption{feedly.WithLogger(logger)}
	if serverCfg.CircuitBreaker {
		opts = append(opts, feedly.WithCircuitBreaker(feedly.DefaultBreakerConfig()))
	}
	return feedly.NewClient(cfg, opts...)
}

func newServer(client *feedly.Client, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `Feedly MCP Server provides tools for reading and triaging a Feedly account.

Available tools:
- feedly_list_subscriptions: List followed feeds, optionally by category
- feedly_list_categories: List categories and tags
- feedly_get_feed: Get metadata for one feed
- feedly_get_entry_ids: Page through entry IDs of a stream
- feedly_get_stream_contents: Read entries of a stream
- feedly_get_entries: Fetch entries by ID
- feedly_mark_entries: Mark entries read/unread or saved/unsaved

Stream IDs look like feed/<url>, user/<id>/category/<label> or user/<id>/tag/global.saved.
Pass the continuation token from one page to get the next.

Configure via environment variables:
- FEEDLY_ACCESS_TOKEN: Feedly developer access token
- FEEDLY_BASE_URL: API base URL (default https://cloud.feedly.com)
- FEEDLY_MAX_RETRIES: Retries for 5xx, 429 and network errors (default 0)`,
	})

	tools.NewHandlerRegistry(client, logger).RegisterAll(server)
	return server
}

func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
