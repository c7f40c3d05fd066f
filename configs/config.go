package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileConfig is the structure loaded from the optional YAML configuration
// file. It only covers connection parameters; operational settings come
// from the environment.
type FileConfig struct {
	URL            string `yaml:"url"`
	Email          string `yaml:"email"`
	APIToken       string `yaml:"api_token"`
	DefaultProject string `yaml:"default_project"`
}

// Config holds the application configuration, merged from the optional file
// and environment variables. Environment variables use the prefix "JIRA_"
// and override file settings. The value is constructed once at startup and
// passed explicitly; nothing reads the environment after Load returns.
type Config struct {
	// Config file path (loaded first from env).
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	// Connection parameters for the remote Jira instance.
	URL            string `envconfig:"URL"`
	Email          string `envconfig:"EMAIL"`
	APIToken       string `envconfig:"API_TOKEN"`
	DefaultProject string `envconfig:"DEFAULT_PROJECT"`

	// Transport and operational settings.
	ListenAddr               string        `envconfig:"LISTEN_ADDR" default:":9001"`
	AdminAddr                string        `envconfig:"ADMIN_ADDR" default:":9002"`
	HTTPClientTimeout        time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	ShutdownTimeout          time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	LogLevel                 string        `envconfig:"LOG_LEVEL" default:"info"`
	OtelExporterOtlpEndpoint string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool          `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// ParsedLogLevel returns the slog.Level for the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Validate checks that the required connection parameters are present. It
// checks presence only; credentials are validated by the remote service.
func (c *Config) Validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "JIRA_URL")
	}
	if c.Email == "" {
		missing = append(missing, "JIRA_EMAIL")
	}
	if c.APIToken == "" {
		missing = append(missing, "JIRA_API_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Load loads configuration first from environment variables (primarily to
// get the config file path), then from the YAML file if one is specified,
// and finally processes the environment again so env vars override file
// settings.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("jira", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if cfg.ConfigFilePath != "" {
		raw, err := os.ReadFile(cfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", cfg.ConfigFilePath, err)
		}
		var fileCfg FileConfig
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file %q: %w", cfg.ConfigFilePath, err)
		}
		cfg.applyFile(fileCfg)

		// Environment variables win over file values.
		if err := envconfig.Process("jira", &cfg); err != nil {
			return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
		}
	}

	return &cfg, nil
}

func (c *Config) applyFile(file FileConfig) {
	if file.URL != "" {
		c.URL = file.URL
	}
	if file.Email != "" {
		c.Email = file.Email
	}
	if file.APIToken != "" {
		c.APIToken = file.APIToken
	}
	if file.DefaultProject != "" {
		c.DefaultProject = file.DefaultProject
	}
}
