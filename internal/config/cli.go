package config

import (
	"flag"
	"io"
	"os"
)

// CLIFlags holds command-line overrides. Nil fields were not set and leave
// the lower layers untouched.
type CLIFlags struct {
	ConfigPath *string
	Port       *string
	LogLevel   *string
	NatsURL    *string
}

// ParseFlags parses command-line arguments (without the program name).
func ParseFlags(args []string) (CLIFlags, error) {
	fs := flag.NewFlagSet("animalfarm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath, port, logLevel, natsURL string
	fs.StringVar(&configPath, "config", "", "path to YAML config file")
	fs.StringVar(&configPath, "c", "", "shorthand for --config")
	fs.StringVar(&port, "port", "", "HTTP listen port")
	fs.StringVar(&port, "p", "", "shorthand for --port")
	fs.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&natsURL, "nats-url", "", "NATS server URL (empty disables events)")

	if err := fs.Parse(args); err != nil {
		return CLIFlags{}, err
	}

	var flags CLIFlags
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config", "c":
			flags.ConfigPath = &configPath
		case "port", "p":
			flags.Port = &port
		case "log-level":
			flags.LogLevel = &logLevel
		case "nats-url":
			flags.NatsURL = &natsURL
		}
	})
	return flags, nil
}

// LoadWithCLI loads configuration with the full hierarchy
// defaults < YAML < ENV < CLI and returns the YAML path that was used.
// The YAML path itself comes from --config, then ANIMALFARM_CONFIG, then
// DefaultConfigFile.
func LoadWithCLI(flags CLIFlags) (*Config, string, error) {
	path := DefaultConfigFile
	if v := os.Getenv("ANIMALFARM_CONFIG"); v != "" {
		path = v
	}
	if flags.ConfigPath != nil {
		path = *flags.ConfigPath
	}

	cfg, err := loadLayers(path, func(c *Config) { applyCLI(c, flags) })
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// applyCLI overlays set flags onto cfg.
func applyCLI(cfg *Config, flags CLIFlags) {
	if flags.Port != nil {
		cfg.Server.Port = *flags.Port
	}
	if flags.LogLevel != nil {
		cfg.Logging.Level = *flags.LogLevel
	}
	if flags.NatsURL != nil {
		cfg.NATS.URL = *flags.NatsURL
	}
}
