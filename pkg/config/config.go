// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read into the config
const EnvPrefix = "DQ_"

// DefaultEnvFile is loaded when present and no other env file is named
const DefaultEnvFile = ".env"

// Config represents the application configuration
type Config struct {
	// Tables
	InputPath   string `koanf:"input_path"`
	CleanedPath string `koanf:"cleaned_path"`
	MaskedPath  string `koanf:"masked_path"`

	// Reports and side outputs
	ReportDir      string `koanf:"report_dir"`
	OperationsPath string `koanf:"operations_path"`
	MetricsPath    string `koanf:"metrics_path"`
	SampleSize     int    `koanf:"sample_size"`

	// Validation
	AllErrors bool `koanf:"all_errors"`

	// Logging
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	LogFile   string `koanf:"log_file"`
}

// Defaults returns the built-in configuration values
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"input_path":      "data/customers_raw.csv",
		"cleaned_path":    "data/customers_cleaned.csv",
		"masked_path":     "data/customers_masked.csv",
		"report_dir":      "reports",
		"operations_path": "",
		"metrics_path":    "",
		"sample_size":     5,
		"all_errors":      false,
		"log_level":       "info",
		"log_format":      "json",
		"log_file":        "",
	}
}

// flagKeys maps flag names that differ from their config key
var flagKeys = map[string]string{
	"input":      "input_path",
	"cleaned":    "cleaned_path",
	"masked":     "masked_path",
	"operations": "operations_path",
	"metrics":    "metrics_path",
}

// LoadOptions names the optional sources layered over the defaults
type LoadOptions struct {
	ConfigFile string         // YAML file, skipped when empty
	EnvFile    string         // .env file, DefaultEnvFile when empty
	Flags      *pflag.FlagSet // only flags the user changed are applied
}

// Load builds the configuration from defaults, then the YAML file, then the
// environment, then changed flags. Later sources win.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if opts.ConfigFile != "" {
		if err := k.Load(file.Provider(opts.ConfigFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", opts.ConfigFile, err)
		}
	}

	// 3. .env file, then DQ_ environment variables
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[key]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}

	if c.CleanedPath == "" {
		return errors.New("cleaned output path is required")
	}

	if c.MaskedPath == "" {
		return errors.New("masked output path is required")
	}

	if c.ReportDir == "" {
		return errors.New("report directory is required")
	}

	if c.SampleSize <= 0 {
		return errors.New("sample size must be positive")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	return nil
}
