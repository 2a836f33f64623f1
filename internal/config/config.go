package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
	"github.com/eugenenazirov/cargo-planner/internal/optimizer"
	"github.com/eugenenazirov/cargo-planner/internal/storage"
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
	Port                 string                `yaml:"port"`
	Containers           []cargo.ContainerSpec `yaml:"containers"`
	MaxStates            int                   `yaml:"max_states"`
	LogLevel             string                `yaml:"log_level"`
	ShutdownGracePeriod  time.Duration         `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    time.Duration         `yaml:"read_header_timeout"`
	WriteTimeout         time.Duration         `yaml:"write_timeout"`
	IdleTimeout          time.Duration         `yaml:"idle_timeout"`
	EnableRequestLogging bool                  `yaml:"enable_request_logging"`
	RateLimitRPS         float64               `yaml:"-"`
	RateLimitBurst       int                   `yaml:"-"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string                `yaml:"port"`
	Containers           []cargo.ContainerSpec `yaml:"containers"`
	MaxStates            int                   `yaml:"max_states"`
	LogLevel             string                `yaml:"log_level"`
	ShutdownGracePeriod  string                `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string                `yaml:"read_header_timeout"`
	WriteTimeout         string                `yaml:"write_timeout"`
	IdleTimeout          string                `yaml:"idle_timeout"`
	EnableRequestLogging *bool                 `yaml:"enable_request_logging"`
	RateLimit            *yamlRateLimit        `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	ContainersStr  *string
	MaxStates      *int
	LogLevel       *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables (lowest explicit source)
	applyEnvConfig(&cfg)

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
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
		Containers:           storage.DefaultContainers(),
		MaxStates:            optimizer.DefaultMaxStates,
		LogLevel:             defaultLogLevel,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
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
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if len(yamlCfg.Containers) > 0 {
		cfg.Containers = yamlCfg.Containers
	}

	if yamlCfg.MaxStates > 0 {
		cfg.MaxStates = yamlCfg.MaxStates
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	applyDuration(&cfg.ShutdownGracePeriod, yamlCfg.ShutdownGracePeriod)
	applyDuration(&cfg.ReadHeaderTimeout, yamlCfg.ReadHeaderTimeout)
	applyDuration(&cfg.WriteTimeout, yamlCfg.WriteTimeout)
	applyDuration(&cfg.IdleTimeout, yamlCfg.IdleTimeout)

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit != nil {
		if yamlCfg.RateLimit.RPS >= 0 {
			cfg.RateLimitRPS = yamlCfg.RateLimit.RPS
		}
		if yamlCfg.RateLimit.Burst >= 0 {
			cfg.RateLimitBurst = yamlCfg.RateLimit.Burst
		}
	}
}

func applyDuration(dst *time.Duration, raw string) {
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*dst = d
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if raw := strings.TrimSpace(os.Getenv("CONTAINERS")); raw != "" {
		specs, err := parseContainers(raw)
		if err == nil && len(specs) > 0 {
			cfg.Containers = specs
		}
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_STATES")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxStates = value
		}
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
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.ContainersStr != nil && *overrides.ContainersStr != "" {
		specs, err := parseContainers(*overrides.ContainersStr)
		if err != nil {
			return fmt.Errorf("parse containers: %w", err)
		}
		cfg.Containers = specs
	}

	if overrides.MaxStates != nil && *overrides.MaxStates > 0 {
		cfg.MaxStates = *overrides.MaxStates
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

	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.MaxStates <= 0 {
		return fmt.Errorf("max states must be positive")
	}
	if err := cargo.ValidateSpecs(cfg.Containers); err != nil {
		return fmt.Errorf("invalid containers: %w", err)
	}
	return nil
}

// parseContainers parses a comma-separated list of role:capacity:cost triples,
// for example "N:10:1,P:5:2,C:5:3".
func parseContainers(raw string) ([]cargo.ContainerSpec, error) {
	parts := strings.Split(raw, ",")
	specs := make([]cargo.ContainerSpec, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("container %q must have the form role:capacity:cost", part)
		}
		role, err := cargo.ParseRole(fields[0])
		if err != nil {
			return nil, err
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid capacity %q", fields[1])
		}
		cost, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid cost %q", fields[2])
		}
		specs = append(specs, cargo.ContainerSpec{Role: role, Capacity: capacity, Cost: cost})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no containers provided")
	}
	return specs, nil
}
