package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olgasafonova/feedly-go/feedly"
	"github.com/olgasafonova/feedly-go/tools"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestRecoverPanic(t *testing.T) {
	logger := testLogger()

	// Should not panic
	func() {
		defer recoverPanic(logger, "test_operation")
		panic("test panic")
	}()

	// No panic case
	func() {
		defer recoverPanic(logger, "test_operation")
	}()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadServerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		unsetEnv(t,
			"FEEDLY_METRICS_ADDR", "FEEDLY_CIRCUIT_BREAKER", "FEEDLY_LOG_LEVEL",
			"METRICS_ADDR", "CIRCUIT_BREAKER", "LOG_LEVEL",
		)

		cfg, err := loadServerConfig()
		if err != nil {
			t.Fatalf("loadServerConfig failed: %v", err)
		}
		if cfg.MetricsAddr != "" || cfg.CircuitBreaker || cfg.LogLevel != "info" {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("from env", func(t *testing.T) {
		t.Setenv("FEEDLY_METRICS_ADDR", ":9090")
		t.Setenv("FEEDLY_CIRCUIT_BREAKER", "true")
		t.Setenv("FEEDLY_LOG_LEVEL", "debug")

		cfg, err := loadServerConfig()
		if err != nil {
			t.Fatalf("loadServerConfig failed: %v", err)
		}
		want := ServerConfig{MetricsAddr: ":9090", CircuitBreaker: true, LogLevel: "debug"}
		if cfg != want {
			t.Errorf("cfg = %+v, want %+v", cfg, want)
		}
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Setenv("FEEDLY_CIRCUIT_BREAKER", "sometimes")
		if _, err := loadServerConfig(); err == nil {
			t.Error("expected error for invalid bool")
		}
	})
}

func TestNewClient(t *testing.T) {
	cfg := feedly.Config{AccessToken: "tok", BaseURL: "https://example.com"}

	client, err := newClient(cfg, ServerConfig{}, testLogger())
	if err != nil {
		t.Fatalf("newClient failed: %v", err)
	}
	if got := client.CircuitBreakerStats().State; got != "disabled" {
		t.Errorf("breaker state = %q, want disabled", got)
	}

	client, err = newClient(cfg, ServerConfig{CircuitBreaker: true}, testLogger())
	if err != nil {
		t.Fatalf("newClient failed: %v", err)
	}
	if got := client.CircuitBreakerStats().State; got != "closed" {
		t.Errorf("breaker state = %q, want closed", got)
	}

	if _, err := newClient(feedly.Config{BaseURL: "nope"}, ServerConfig{}, testLogger()); err == nil {
		t.Error("expected error for invalid base URL")
	}
}

func TestNewServer_RegistersTools(t *testing.T) {
	client, err := feedly.NewClient(feedly.Config{BaseURL: "https://example.com"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	server := newServer(client, testLogger())

	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect failed: %v", err)
	}
	defer func() { _ = serverSession.Close() }()

	session, err := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0.0.0"}, nil).Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}
	if len(res.Tools) != len(tools.AllTools) {
		t.Errorf("tools = %d, want %d", len(res.Tools), len(tools.AllTools))
	}
}

func TestMetricsServer(t *testing.T) {
	srv := newMetricsServer(":0")
	if srv.ReadHeaderTimeout == 0 {
		t.Error("ReadHeaderTimeout should be set")
	}

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/healthz", http.StatusOK, "ok"},
		{"/other", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("GET failed: %v", err)
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}
