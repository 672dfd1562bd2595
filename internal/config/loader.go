package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "animalfarm.yaml"

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	return loadLayers(yamlPath, nil)
}

// loadLayers applies defaults, YAML, ENV and then the optional top layer
// before validating.
func loadLayers(yamlPath string, top func(*Config)) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if top != nil {
		top(&cfg)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	// PORT is honored for parity with common PaaS conventions.
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Port, "ANIMALFARM_PORT")
	setString(&cfg.Server.CORSOrigin, "ANIMALFARM_CORS_ORIGIN")
	setDuration(&cfg.Server.RequestTimeout, "ANIMALFARM_REQUEST_TIMEOUT")

	setString(&cfg.Logging.Level, "ANIMALFARM_LOG_LEVEL")
	setString(&cfg.Logging.Service, "ANIMALFARM_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "ANIMALFARM_LOG_ASYNC")

	setFloat64(&cfg.Rate.RequestsPerSecond, "ANIMALFARM_RATE_RPS")
	setInt(&cfg.Rate.Burst, "ANIMALFARM_RATE_BURST")
	setDuration(&cfg.Rate.CleanupInterval, "ANIMALFARM_RATE_CLEANUP_INTERVAL")
	setDuration(&cfg.Rate.MaxIdleTime, "ANIMALFARM_RATE_MAX_IDLE_TIME")

	setInt(&cfg.Breaker.MaxFailures, "ANIMALFARM_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "ANIMALFARM_BREAKER_TIMEOUT")

	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.NATS.Stream, "ANIMALFARM_NATS_STREAM")

	setInt64(&cfg.Cache.L1MaxSizeMB, "ANIMALFARM_CACHE_L1_SIZE_MB")
	setString(&cfg.Cache.L2Bucket, "ANIMALFARM_CACHE_L2_BUCKET")
	setDuration(&cfg.Cache.L2TTL, "ANIMALFARM_CACHE_L2_TTL")
	setDuration(&cfg.Idempotency.TTL, "ANIMALFARM_IDEMPOTENCY_TTL")

	setString(&cfg.OTEL.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.OTEL.ServiceName, "OTEL_SERVICE_NAME")
	setBool(&cfg.OTEL.Insecure, "ANIMALFARM_OTEL_INSECURE")

	setBool(&cfg.MCP.Enabled, "ANIMALFARM_MCP_ENABLED")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Rate.RequestsPerSecond <= 0 {
		return errors.New("rate.requests_per_second must be > 0")
	}
	if cfg.Rate.Burst < 1 {
		return errors.New("rate.burst must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Cache.L1MaxSizeMB < 1 {
		return errors.New("cache.l1_max_size_mb must be >= 1")
	}
	if cfg.NATS.URL != "" && cfg.NATS.Stream == "" {
		return errors.New("nats.stream is required when nats.url is set")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
