package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetSuitePath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		flags    Flags
		expected string
	}{
		{
			name:     "default path",
			config:   &Config{ProjectPath: ".", SuitePath: "suites"},
			expected: "suites",
		},
		{
			name:     "with suite path flag",
			config:   &Config{ProjectPath: "/project", SuitePath: "suites"},
			flags:    Flags{SuitePath: "more"},
			expected: "/project/more",
		},
		{
			name:     "absolute suite path",
			config:   &Config{ProjectPath: "/project", SuitePath: "suites"},
			flags:    Flags{SuitePath: "/absolute/path"},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.ApplyFlags(tt.flags)
			result := tt.config.GetSuitePath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_ApplyFlags_Workers(t *testing.T) {
	cfg := New()

	cfg.ApplyFlags(Flags{})
	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected Workers %d, got %d", DefaultWorkers, cfg.Workers)
	}

	cfg.ApplyFlags(Flags{Workers: 9})
	if cfg.Workers != 9 {
		t.Errorf("expected Workers 9, got %d", cfg.Workers)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected Workers %d, got %d", DefaultWorkers, cfg.Workers)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"unknown store", func(c *Config) { c.Store = "redis" }, true},
		{"mysql without dsn", func(c *Config) { c.Store = "mysql" }, true},
		{"mysql with dsn", func(c *Config) { c.Store = "mysql"; c.MySQLDSN = "root@tcp(127.0.0.1:3306)/paramrun" }, false},
		{"json logs", func(c *Config) { c.LogFormat = "json" }, false},
		{"xml logs", func(c *Config) { c.LogFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	env := "PARAMRUN_WORKERS=3\nPARAMRUN_LOG_FORMAT=json\nPARAMRUN_RESOURCE_DIR=data\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("PARAMRUN_RESOURCE_DIR") })
	t.Setenv("PARAMRUN_LOG_FORMAT", "console")
	t.Setenv("PARAMRUN_WORKERS", "")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogFormat != "console" {
		t.Errorf("process environment should win, got %s", cfg.LogFormat)
	}
	if cfg.GetResourceDir() != filepath.Join(dir, "data") {
		t.Errorf("expected resource dir from .env, got %s", cfg.GetResourceDir())
	}
}

func TestLoad_WithoutEnvFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store != DefaultStore {
		t.Errorf("expected store %s, got %s", DefaultStore, cfg.Store)
	}
}
