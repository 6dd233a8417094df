package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const minimalConfig = `
app:
  name: pickleleague
  port: 8080
database:
  driver: sqlite
  filename: data/test.db
`

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.App.Environment != "development" || cfg.App.LogLevel != defaultLogLevel {
		t.Fatalf("unexpected app defaults %+v", cfg.App)
	}
	if cfg.App.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("expected shutdown timeout %v, got %v", defaultShutdownTimeout, cfg.App.ShutdownTimeout)
	}
	if cfg.Scheduler.LeagueStatusCron != defaultStatusReportCron {
		t.Fatalf("expected default cron, got %q", cfg.Scheduler.LeagueStatusCron)
	}
	if cfg.RateLimit.ReportCooldown != 5*time.Second || cfg.RateLimit.ReportMaxPerHour != 30 || cfg.RateLimit.ReportMaxIPPerHour != 120 {
		t.Fatalf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestParseExplicitValues(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig + `
scheduler:
  league_status_cron: ""
rate_limit:
  report_cooldown: 2s
  trust_forwarded_header: true
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Scheduler.LeagueStatusCron != "" {
		t.Fatalf("expected job disabled, got %q", cfg.Scheduler.LeagueStatusCron)
	}
	if cfg.RateLimit.ReportCooldown != 2*time.Second || !cfg.RateLimit.TrustForwardedHeader {
		t.Fatalf("unexpected rate limit config %+v", cfg.RateLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"missing name":   func(c *Config) { c.App.Name = "" },
		"missing port":   func(c *Config) { c.App.Port = 0 },
		"missing driver": func(c *Config) { c.Database.Driver = "" },
		"postgres":       func(c *Config) { c.Database.Driver = "postgres" },
		"no filename":    func(c *Config) { c.Database.Filename = "" },
		"bad cron":       func(c *Config) { c.Scheduler.LeagueStatusCron = "every night" },
	}
	for name, mutate := range cases {
		cfg, err := Parse([]byte(minimalConfig))
		if err != nil {
			t.Fatalf("%s: parse: %v", name, err)
		}
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	if err := os.WriteFile(path, []byte(minimalConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DATABASE_FILENAME", filepath.Join(dir, "override.db"))
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasSuffix(cfg.Database.Filename, "override.db") || cfg.App.LogLevel != "debug" {
		t.Fatalf("expected environment overrides, got %+v %+v", cfg.Database, cfg.App)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for a missing config file")
	}
}
