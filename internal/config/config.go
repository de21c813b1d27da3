package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/coverage-calculator/internal/storage"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	Products             []storage.Product
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	LogLevel             string
	RateLimitRPS         float64
	RateLimitBurst       int
	// TrustProxyHeaders keys rate limiting on X-Forwarded-For. Enable only
	// behind a proxy that overwrites the header.
	TrustProxyHeaders bool
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string            `yaml:"port"`
	Products             []storage.Product `yaml:"products"`
	ShutdownGracePeriod  string            `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string            `yaml:"read_header_timeout"`
	WriteTimeout         string            `yaml:"write_timeout"`
	IdleTimeout          string            `yaml:"idle_timeout"`
	EnableRequestLogging *bool             `yaml:"enable_request_logging"`
	LogLevel             string            `yaml:"log_level"`
	RateLimit            *yamlRateLimit    `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS               *float64 `yaml:"rps"`
	Burst             *int     `yaml:"burst"`
	TrustProxyHeaders *bool    `yaml:"trust_proxy_headers"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	LogLevel       *string
	RateLimitRPS   *float64
	RateLimitBurst *int
	TrustProxy     *bool
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables
	applyEnvConfig(&cfg)

	// Load from YAML file if specified (overrides env)
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		Products:             storage.DefaultProducts(),
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		LogLevel:             defaultLogLevel,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if len(yamlCfg.Products) > 0 {
		cfg.Products = yamlCfg.Products
	}

	durations := []struct {
		name   string
		raw    string
		target *time.Duration
	}{
		{"shutdown_grace_period", yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{"read_header_timeout", yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"write_timeout", yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{"idle_timeout", yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		value, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.target = value
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.RateLimit != nil {
		if rps := yamlCfg.RateLimit.RPS; rps != nil && *rps >= 0 {
			cfg.RateLimitRPS = *rps
		}
		if burst := yamlCfg.RateLimit.Burst; burst != nil && *burst >= 0 {
			cfg.RateLimitBurst = *burst
		}
		if trust := yamlCfg.RateLimit.TrustProxyHeaders; trust != nil {
			cfg.TrustProxyHeaders = *trust
		}
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	if trust := strings.TrimSpace(os.Getenv("TRUST_PROXY_HEADERS")); trust != "" {
		if value, err := strconv.ParseBool(trust); err == nil {
			cfg.TrustProxyHeaders = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	if overrides.TrustProxy != nil {
		cfg.TrustProxyHeaders = *overrides.TrustProxy
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if len(cfg.Products) == 0 {
		return fmt.Errorf("product catalog cannot be empty")
	}
	seen := make(map[string]struct{}, len(cfg.Products))
	for _, p := range cfg.Products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return fmt.Errorf("product catalog entry without id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate product id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
