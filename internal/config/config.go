// Package config provides hierarchical configuration loading for the farm service.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the farm service.
type Config struct {
	Server      Server      `yaml:"server"`
	Logging     Logging     `yaml:"logging"`
	Rate        Rate        `yaml:"rate"`
	Breaker     Breaker     `yaml:"breaker"`
	NATS        NATS        `yaml:"nats"`
	Cache       Cache       `yaml:"cache"`
	Idempotency Idempotency `yaml:"idempotency"`
	OTEL        OTEL        `yaml:"otel"`
	MCP         MCP         `yaml:"mcp"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port           string        `yaml:"port"`
	CORSOrigin     string        `yaml:"cors_origin"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`
}

// Rate holds per-IP rate limiter configuration.
type Rate struct {
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"`
	MaxIdleTime       time.Duration `yaml:"max_idle_time"`
}

// Breaker holds circuit breaker configuration for event publishing.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// NATS holds NATS JetStream configuration. An empty URL disables event
// publishing and the L2 cache.
type NATS struct {
	URL    string `yaml:"url"`
	Stream string `yaml:"stream"`
}

// Cache holds idempotency cache configuration.
type Cache struct {
	L1MaxSizeMB int64         `yaml:"l1_max_size_mb"`
	L2Bucket    string        `yaml:"l2_bucket"`
	L2TTL       time.Duration `yaml:"l2_ttl"`
}

// Idempotency holds Idempotency-Key replay configuration.
type Idempotency struct {
	TTL time.Duration `yaml:"ttl"`
}

// OTEL holds OpenTelemetry exporter configuration. An empty endpoint keeps
// the global no-op providers.
type OTEL struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
	Insecure    bool   `yaml:"insecure"`
}

// MCP holds Model Context Protocol endpoint configuration.
type MCP struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:           "3000",
			CORSOrigin:     "*",
			RequestTimeout: 30 * time.Second,
		},
		Logging: Logging{
			Level:   "info",
			Service: "animalfarm",
		},
		Rate: Rate{
			RequestsPerSecond: 10,
			Burst:             100,
			CleanupInterval:   5 * time.Minute,
			MaxIdleTime:       10 * time.Minute,
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		NATS: NATS{
			Stream: "ANIMALFARM",
		},
		Cache: Cache{
			L1MaxSizeMB: 16,
			L2Bucket:    "ANIMALFARM_IDEMPOTENCY",
			L2TTL:       24 * time.Hour,
		},
		Idempotency: Idempotency{
			TTL: 24 * time.Hour,
		},
		OTEL: OTEL{
			ServiceName: "animalfarm",
			Insecure:    true,
		},
		MCP: MCP{
			Enabled: true,
			Name:    "animalfarm",
			Version: "0.1.0",
		},
	}
}
