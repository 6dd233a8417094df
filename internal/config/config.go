// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultShutdownTimeout   = 30 * time.Second
	defaultStatusReportCron = "5 0 * * *"
	defaultLogLevel          = "info"
)

type DatabaseConfig struct {
	Driver            string `yaml:"driver"`
	Filename          string `yaml:"filename"`
	BusyTimeoutMillis int    `yaml:"busy_timeout_ms"`
}

type SchedulerConfig struct {
	// LeagueStatusCron drives the job that logs each league's calendar
	// status. Empty disables the job.
	LeagueStatusCron string `yaml:"league_status_cron"`
}

type RateLimitConfig struct {
	ReportCooldown       time.Duration `yaml:"report_cooldown"`
	ReportMaxPerHour     int           `yaml:"report_max_per_hour"`
	ReportMaxIPPerHour   int           `yaml:"report_max_ip_per_hour"`
	TrustForwardedHeader bool          `yaml:"trust_forwarded_header"`
}

type Config struct {
	App struct {
		Name            string        `yaml:"name"`
		Environment     string        `yaml:"environment"`
		Port            int           `yaml:"port"`
		LogLevel        string        `yaml:"log_level"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Scheduler SchedulerConfig `yaml:"scheduler"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Environment wins over the file for deployment-specific values
	if filename := os.Getenv("DATABASE_FILENAME"); filename != "" {
		cfg.Database.Filename = filename
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.App.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and fills defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	cfg.Scheduler.LeagueStatusCron = defaultStatusReportCron
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = defaultLogLevel
	}
	if c.App.ShutdownTimeout <= 0 {
		c.App.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.RateLimit.ReportCooldown <= 0 {
		c.RateLimit.ReportCooldown = 5 * time.Second
	}
	if c.RateLimit.ReportMaxPerHour <= 0 {
		c.RateLimit.ReportMaxPerHour = 30
	}
	if c.RateLimit.ReportMaxIPPerHour <= 0 {
		c.RateLimit.ReportMaxIPPerHour = 120
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if expr := strings.TrimSpace(c.Scheduler.LeagueStatusCron); expr != "" {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("invalid league_status_cron %q: %w", expr, err)
		}
	}

	return nil
}
