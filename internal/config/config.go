// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment labels. Development enables extra error detail in responses.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the top-level application configuration.
type Config struct {
	Environment string            `yaml:"environment"`
	Server      ServerConfig      `yaml:"server"`
	Marketplace MarketplaceConfig `yaml:"marketplace"`
	CORS        CORSConfig        `yaml:"cors"`
	Static      StaticConfig      `yaml:"static"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	BodyLimit    string        `yaml:"body_limit"`
}

// MarketplaceConfig defines the upstream marketplace API settings.
type MarketplaceConfig struct {
	ProductionURL string        `yaml:"production_url"`
	StagingURL    string        `yaml:"staging_url"`
	Staging       bool          `yaml:"staging"`
	Timeout       time.Duration `yaml:"timeout"`
}

// BaseURL returns the marketplace host selected by the staging flag. It is
// resolved once at startup and handed to the forwarder.
func (m *MarketplaceConfig) BaseURL() string {
	if m.Staging {
		return m.StagingURL
	}
	return m.ProductionURL
}

// CORSConfig defines the browser origin allow-list. Only listed origins
// receive credentialed responses.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StaticConfig defines the SPA bootstrap file served for non-API GETs.
type StaticConfig struct {
	Dir   string `yaml:"dir"`
	Index string `yaml:"index"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a configuration from environment variables only. Used by
// the single-invocation variant, which has no config file.
func FromEnv() *Config {
	cfg := &Config{
		Environment: os.Getenv("ENVIRONMENT"),
		Marketplace: MarketplaceConfig{
			ProductionURL: os.Getenv("MARKETPLACE_PRODUCTION_URL"),
			StagingURL:    os.Getenv("MARKETPLACE_STAGING_URL"),
			Staging:       envBool("MARKETPLACE_STAGING"),
		},
	}
	applyDefaults(cfg)
	return cfg
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = EnvProduction
	}
	applyServerDefaults(&cfg.Server)
	applyMarketplaceDefaults(&cfg.Marketplace)
	applyStaticDefaults(&cfg.Static)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.BodyLimit == "" {
		s.BodyLimit = "1M"
	}
}

func applyMarketplaceDefaults(m *MarketplaceConfig) {
	if m.ProductionURL == "" {
		m.ProductionURL = "https://api.trendyol.com/sapigw"
	}
	if m.StagingURL == "" {
		m.StagingURL = "https://stageapi.trendyol.com/stagesapigw"
	}
	if m.Timeout == 0 {
		m.Timeout = 30 * time.Second
	}
}

func applyStaticDefaults(s *StaticConfig) {
	if s.Index == "" {
		s.Index = "index.html"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Environment != EnvDevelopment && cfg.Environment != EnvProduction {
		errs = append(errs, fmt.Errorf(
			"environment must be %q or %q (got %q)",
			EnvDevelopment, EnvProduction, cfg.Environment,
		))
	}

	if cfg.Marketplace.ProductionURL == "" {
		errs = append(errs, fmt.Errorf("marketplace.production_url is required"))
	}
	if cfg.Marketplace.Staging && cfg.Marketplace.StagingURL == "" {
		errs = append(errs, fmt.Errorf(
			"marketplace.staging_url is required when marketplace.staging is set",
		))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be text or json (got %q)", cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}
