package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/storage"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// APISettings describes the service metadata exposed by the HTTP layer.
type APISettings struct {
	Title       string
	Description string
	Version     string
	DocsURL     string
	RedocURL    string
}

// LogSettings holds the logging configuration. File defaults to
// <base>/logs/payroll.log when left empty.
type LogSettings struct {
	Level  string
	Format string
	File   string
}

// Settings aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults.
// DataDir and ReportsDir are always derived from BaseDir.
type Settings struct {
	Port                 string
	BaseDir              string
	DataDir              string
	ReportsDir           string
	SupportedStates      []string
	API                  APISettings
	Log                  LogSettings
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// yamlSettings represents the YAML configuration file structure.
type yamlSettings struct {
	Port                 string        `yaml:"port"`
	BaseDir              string        `yaml:"base_dir"`
	SupportedStates      []string      `yaml:"supported_states"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	Log                  yamlLog       `yaml:"log"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// yamlLog represents the log section in YAML.
type yamlLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	BaseDir        *string
	StatesStr      *string
	LogLevel       *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults.
func Load(overrides *CLIOverrides) (Settings, error) {
	cfg := defaultSettings()

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Settings{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLSettings(&cfg, yamlCfg)
	}

	// Apply environment variables (override YAML)
	applyEnvSettings(&cfg)

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Settings{}, err
		}
	}

	// Resolve the base directory and everything derived from it
	if err := finalize(&cfg); err != nil {
		return Settings{}, err
	}

	// Validate final configuration
	if err := validateSettings(cfg); err != nil {
		return Settings{}, err
	}

	return cfg, nil
}

// defaultSettings returns a Settings with default values.
func defaultSettings() Settings {
	return Settings{
		Port:            defaultPort,
		SupportedStates: storage.DefaultStates(),
		API:             defaultAPISettings(),
		Log: LogSettings{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// defaultAPISettings returns the fixed service metadata.
func defaultAPISettings() APISettings {
	return APISettings{
		Title:       "Payroll MVP API",
		Description: "API for payroll calculations with state-specific compliance",
		Version:     "0.1.0",
		DocsURL:     "/docs",
		RedocURL:    "/redoc",
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlSettings
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLSettings applies YAML configuration to the Settings struct.
func applyYAMLSettings(cfg *Settings, yamlCfg *yamlSettings) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.BaseDir != "" {
		cfg.BaseDir = yamlCfg.BaseDir
	}

	if len(yamlCfg.SupportedStates) > 0 {
		cfg.SupportedStates = yamlCfg.SupportedStates
	}

	if yamlCfg.ShutdownGracePeriod != "" {
		if d, err := time.ParseDuration(yamlCfg.ShutdownGracePeriod); err == nil {
			cfg.ShutdownGracePeriod = d
		}
	}

	if yamlCfg.ReadHeaderTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.ReadHeaderTimeout); err == nil {
			cfg.ReadHeaderTimeout = d
		}
	}

	if yamlCfg.WriteTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.WriteTimeout); err == nil {
			cfg.WriteTimeout = d
		}
	}

	if yamlCfg.IdleTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.IdleTimeout); err == nil {
			cfg.IdleTimeout = d
		}
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS > 0 {
		cfg.RateLimitRPS = yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst > 0 {
		cfg.RateLimitBurst = yamlCfg.RateLimit.Burst
	}

	if yamlCfg.Log.Level != "" {
		cfg.Log.Level = yamlCfg.Log.Level
	}

	if yamlCfg.Log.Format != "" {
		cfg.Log.Format = yamlCfg.Log.Format
	}

	if yamlCfg.Log.File != "" {
		cfg.Log.File = yamlCfg.Log.File
	}
}

// applyEnvSettings applies environment variable configuration.
func applyEnvSettings(cfg *Settings) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if baseDir := strings.TrimSpace(os.Getenv("BASE_DIR")); baseDir != "" {
		cfg.BaseDir = baseDir
	}

	if rawStates := strings.TrimSpace(os.Getenv("SUPPORTED_STATES")); rawStates != "" {
		states, err := parseStates(rawStates)
		if err == nil && len(states) > 0 {
			cfg.SupportedStates = states
		}
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.Log.Level = level
	}

	if format := strings.TrimSpace(os.Getenv("LOG_FORMAT")); format != "" {
		cfg.Log.Format = format
	}

	if file := strings.TrimSpace(os.Getenv("LOG_FILE")); file != "" {
		cfg.Log.File = file
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
func applyCLIOverrides(cfg *Settings, overrides *CLIOverrides) error {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.BaseDir != nil && *overrides.BaseDir != "" {
		cfg.BaseDir = *overrides.BaseDir
	}

	if overrides.StatesStr != nil && *overrides.StatesStr != "" {
		states, err := parseStates(*overrides.StatesStr)
		if err != nil {
			return fmt.Errorf("parse supported states: %w", err)
		}
		cfg.SupportedStates = states
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.Log.Level = *overrides.LogLevel
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	return nil
}

// finalize resolves the base directory, derives the data, reports, and log
// file paths from it, and normalizes states and log settings.
func finalize(cfg *Settings) error {
	if strings.TrimSpace(cfg.BaseDir) == "" {
		cfg.BaseDir = "."
	}

	base, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return fmt.Errorf("resolve base directory: %w", err)
	}
	cfg.BaseDir = base
	cfg.DataDir = filepath.Join(base, "data")
	cfg.ReportsDir = filepath.Join(base, "reports")

	states := make([]string, 0, len(cfg.SupportedStates))
	for _, state := range cfg.SupportedStates {
		state = strings.ToLower(strings.TrimSpace(state))
		if state != "" {
			states = append(states, state)
		}
	}
	cfg.SupportedStates = states

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = normalizeLogFormat(cfg.Log.Format)
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(base, "logs", "payroll.log")
	}

	return nil
}

// validateSettings validates the final configuration.
func validateSettings(cfg Settings) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if len(cfg.SupportedStates) == 0 {
		return fmt.Errorf("supported states cannot be empty")
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return fmt.Errorf("log format must be console or json, got %q", cfg.Log.Format)
	}
	return nil
}

// normalizeLogFormat lowercases the format and maps the text alias onto the
// console encoder.
func normalizeLogFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		return defaultLogFormat
	case "text":
		return "console"
	default:
		return format
	}
}

// parseStates parses a comma-separated string of state names into a slice of
// lowercased state names.
func parseStates(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	states := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		states = append(states, part)
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("no states provided")
	}
	return states, nil
}
