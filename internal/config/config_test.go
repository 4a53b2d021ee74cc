package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs([]string{"--customer", "3"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DBPath != "movie-booth.db" {
		t.Fatalf("expected default db path, got %q", cfg.App.DBPath)
	}
	if cfg.App.Workers != 4 || cfg.App.FetchTimeout != 10*time.Second || cfg.App.ClockInterval != time.Second {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if cfg.App.CustomerID != 3 {
		t.Fatalf("expected customer 3, got %d", cfg.App.CustomerID)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestFlagsOverrideEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "booth.yaml")
	data := "customer: 1\nworkers: 2\nfetch_timeout: 3s\nfooter: true\ndb: file.db\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	env := []string{
		"MOVIE_BOOTH_CONFIG=" + path,
		"MOVIE_BOOTH_WORKERS=6",
		"MOVIE_BOOTH_DB=env.db",
	}
	cfg, err := LoadArgs([]string{"--db", "flag.db"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DBPath != "flag.db" {
		t.Fatalf("expected flag to win, got %q", cfg.App.DBPath)
	}
	if cfg.App.Workers != 6 {
		t.Fatalf("expected env to beat file, got %d", cfg.App.Workers)
	}
	if cfg.App.CustomerID != 1 || cfg.App.FetchTimeout != 3*time.Second || !cfg.App.ShowFooter {
		t.Fatalf("expected file values, got %+v", cfg.App)
	}
	if cfg.Flags["config"] != path {
		t.Fatalf("expected config path recorded, got %q", cfg.Flags["config"])
	}
}

func TestInvalidEnvValueIsReported(t *testing.T) {
	_, err := LoadArgs(nil, []string{"MOVIE_BOOTH_WORKERS=many"})
	if err == nil || !strings.Contains(err.Error(), "MOVIE_BOOTH_WORKERS") {
		t.Fatalf("expected error naming the variable, got %v", err)
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestHelpFlag(t *testing.T) {
	_, err := LoadArgs([]string{"--help"}, nil)
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	if usage := Usage(); !strings.Contains(usage, "--fetch-timeout") {
		t.Fatalf("expected flag listing, got %q", usage)
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs([]string{"--customer", "1"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := map[string]func(*Config){
		"customer":       func(c *Config) { c.App.CustomerID = 0 },
		"workers":        func(c *Config) { c.App.Workers = 0 },
		"fetch-timeout":  func(c *Config) { c.App.FetchTimeout = -time.Second },
		"clock-interval": func(c *Config) { c.App.ClockInterval = 0 },
		"width":          func(c *Config) { c.App.Width = -1 },
		"db":             func(c *Config) { c.App.DBPath = " " },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
