package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.Server.Port)
	}
	if cfg.Breaker.Timeout != 30*time.Second {
		t.Errorf("expected breaker timeout 30s, got %v", cfg.Breaker.Timeout)
	}
	if cfg.NATS.URL != "" {
		t.Errorf("expected NATS disabled by default, got %s", cfg.NATS.URL)
	}
	if err := validate(&cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "test.yaml")

	content := `
server:
  port: "9090"
  cors_origin: "http://example.com"
logging:
  level: "debug"
  async: true
cache:
  l1_max_size_mb: 32
mcp:
  enabled: false
`
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.CORSOrigin != "http://example.com" {
		t.Errorf("expected cors http://example.com, got %s", cfg.Server.CORSOrigin)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Async {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Cache.L1MaxSizeMB != 32 {
		t.Errorf("expected l1 size 32, got %d", cfg.Cache.L1MaxSizeMB)
	}
	if cfg.MCP.Enabled {
		t.Error("expected mcp disabled")
	}
	// Unchanged fields keep defaults
	if cfg.NATS.Stream != "ANIMALFARM" {
		t.Errorf("expected default stream, got %s", cfg.NATS.Stream)
	}
}

func TestLoadYAMLMissing(t *testing.T) {
	cfg := Defaults()
	if err := loadYAML(&cfg, "/nonexistent/path.yaml"); err != nil {
		t.Errorf("missing YAML should not error, got %v", err)
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(yamlPath, []byte("server: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverride(t *testing.T) {
	cfg := Defaults()

	t.Setenv("ANIMALFARM_PORT", "7070")
	t.Setenv("NATS_URL", "nats://nats:4222")
	t.Setenv("ANIMALFARM_LOG_LEVEL", "warn")
	t.Setenv("ANIMALFARM_BREAKER_TIMEOUT", "1m")
	t.Setenv("ANIMALFARM_RATE_RPS", "2.5")
	t.Setenv("ANIMALFARM_CACHE_L1_SIZE_MB", "64")
	t.Setenv("ANIMALFARM_MCP_ENABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")

	loadEnv(&cfg)

	if cfg.Server.Port != "7070" {
		t.Errorf("expected port 7070, got %s", cfg.Server.Port)
	}
	if cfg.NATS.URL != "nats://nats:4222" {
		t.Errorf("expected NATS URL, got %s", cfg.NATS.URL)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Breaker.Timeout != time.Minute {
		t.Errorf("expected breaker timeout 1m, got %v", cfg.Breaker.Timeout)
	}
	if cfg.Rate.RequestsPerSecond != 2.5 {
		t.Errorf("expected rps 2.5, got %v", cfg.Rate.RequestsPerSecond)
	}
	if cfg.Cache.L1MaxSizeMB != 64 {
		t.Errorf("expected l1 64, got %d", cfg.Cache.L1MaxSizeMB)
	}
	if cfg.MCP.Enabled {
		t.Error("expected mcp disabled via env")
	}
	if cfg.OTEL.Endpoint != "otel:4317" {
		t.Errorf("expected otel endpoint, got %s", cfg.OTEL.Endpoint)
	}
}

func TestEnvPortPrecedence(t *testing.T) {
	cfg := Defaults()
	t.Setenv("PORT", "4000")
	t.Setenv("ANIMALFARM_PORT", "5000")
	loadEnv(&cfg)
	if cfg.Server.Port != "5000" {
		t.Errorf("ANIMALFARM_PORT should win over PORT, got %s", cfg.Server.Port)
	}
}

func TestEnvInvalidValuesIgnored(t *testing.T) {
	cfg := Defaults()
	t.Setenv("ANIMALFARM_RATE_BURST", "lots")
	t.Setenv("ANIMALFARM_BREAKER_TIMEOUT", "soon")
	loadEnv(&cfg)
	if cfg.Rate.Burst != 100 {
		t.Errorf("invalid int should be ignored, got %d", cfg.Rate.Burst)
	}
	if cfg.Breaker.Timeout != 30*time.Second {
		t.Errorf("invalid duration should be ignored, got %v", cfg.Breaker.Timeout)
	}
}

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{
			name:   "empty port",
			modify: func(c *Config) { c.Server.Port = "" },
			errMsg: "server.port is required",
		},
		{
			name:   "zero rps",
			modify: func(c *Config) { c.Rate.RequestsPerSecond = 0 },
			errMsg: "rate.requests_per_second must be > 0",
		},
		{
			name:   "zero burst",
			modify: func(c *Config) { c.Rate.Burst = 0 },
			errMsg: "rate.burst must be >= 1",
		},
		{
			name:   "zero breaker failures",
			modify: func(c *Config) { c.Breaker.MaxFailures = 0 },
			errMsg: "breaker.max_failures must be >= 1",
		},
		{
			name:   "zero cache size",
			modify: func(c *Config) { c.Cache.L1MaxSizeMB = 0 },
			errMsg: "cache.l1_max_size_mb must be >= 1",
		},
		{
			name: "nats without stream",
			modify: func(c *Config) {
				c.NATS.URL = "nats://localhost:4222"
				c.NATS.Stream = ""
			},
			errMsg: "nats.stream is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			err := validate(&cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestLoadFrom_FullHierarchy(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(yamlPath, []byte(`
server:
  port: "9090"
logging:
  level: "debug"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ANIMALFARM_PORT", "7070")

	cfg, err := LoadFrom(yamlPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("env should override YAML: got port %q, want 7070", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("YAML should override defaults: got level %q", cfg.Logging.Level)
	}
}

func TestLoadFrom_ValidationFailure(t *testing.T) {
	t.Setenv("ANIMALFARM_RATE_BURST", "0")
	if _, err := LoadFrom("/nonexistent.yaml"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestParseFlags(t *testing.T) {
	flags, err := ParseFlags([]string{"--port", "9090", "--log-level", "debug"})
	if err != nil {
		t.Fatal(err)
	}

	if flags.Port == nil || *flags.Port != "9090" {
		t.Errorf("expected port 9090, got %v", flags.Port)
	}
	if flags.LogLevel == nil || *flags.LogLevel != "debug" {
		t.Errorf("expected log-level debug, got %v", flags.LogLevel)
	}
	if flags.NatsURL != nil {
		t.Errorf("expected nil NatsURL, got %v", *flags.NatsURL)
	}
	if flags.ConfigPath != nil {
		t.Errorf("expected nil ConfigPath, got %v", *flags.ConfigPath)
	}
}

func TestParseFlagsShorthand(t *testing.T) {
	flags, err := ParseFlags([]string{"-p", "7070", "-c", "custom.yaml"})
	if err != nil {
		t.Fatal(err)
	}

	if flags.Port == nil || *flags.Port != "7070" {
		t.Errorf("expected port 7070, got %v", flags.Port)
	}
	if flags.ConfigPath == nil || *flags.ConfigPath != "custom.yaml" {
		t.Errorf("expected config custom.yaml, got %v", flags.ConfigPath)
	}
}

func TestParseFlagsInvalid(t *testing.T) {
	if _, err := ParseFlags([]string{"--unknown-flag"}); err == nil {
		t.Error("expected error for unknown flag, got nil")
	}
}

func TestApplyCLINilFlags(t *testing.T) {
	cfg := Defaults()
	original := cfg

	applyCLI(&cfg, CLIFlags{})

	if cfg.Server.Port != original.Server.Port {
		t.Errorf("port changed from %s to %s", original.Server.Port, cfg.Server.Port)
	}
	if cfg.Logging.Level != original.Logging.Level {
		t.Errorf("log level changed from %s to %s", original.Logging.Level, cfg.Logging.Level)
	}
}

func TestCLIOverridesEnv(t *testing.T) {
	t.Setenv("ANIMALFARM_PORT", "7070")
	t.Setenv("ANIMALFARM_LOG_LEVEL", "warn")
	t.Setenv("ANIMALFARM_CONFIG", "/nonexistent.yaml")

	flags, err := ParseFlags([]string{"--port", "3333", "--log-level", "error", "--nats-url", "nats://cli:4222"})
	if err != nil {
		t.Fatal(err)
	}

	cfg, path, err := LoadWithCLI(flags)
	if err != nil {
		t.Fatal(err)
	}

	if path != "/nonexistent.yaml" {
		t.Errorf("expected env config path, got %s", path)
	}
	if cfg.Server.Port != "3333" {
		t.Errorf("expected CLI port 3333 to override ENV 7070, got %s", cfg.Server.Port)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected CLI log-level error to override ENV warn, got %s", cfg.Logging.Level)
	}
	if cfg.NATS.URL != "nats://cli:4222" {
		t.Errorf("expected CLI NATS URL, got %s", cfg.NATS.URL)
	}
}

func TestLoadWithCLICustomConfig(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(yamlPath, []byte("server:\n  port: \"5555\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	flags, err := ParseFlags([]string{"--config", yamlPath})
	if err != nil {
		t.Fatal(err)
	}

	cfg, resolvedPath, err := LoadWithCLI(flags)
	if err != nil {
		t.Fatal(err)
	}

	if resolvedPath != yamlPath {
		t.Errorf("expected resolved path %s, got %s", yamlPath, resolvedPath)
	}
	if cfg.Server.Port != "5555" {
		t.Errorf("expected port 5555 from custom YAML, got %s", cfg.Server.Port)
	}
}
