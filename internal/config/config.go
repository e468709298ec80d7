package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `validate:"required"`
	SuitePath   string
	ResourceDir string

	// Output settings
	OutputJSONFile string `validate:"required"`
	OutputJSONDir  string
	Store          string `validate:"oneof=json mysql"`
	MySQLDSN       string `validate:"required_if=Store mysql"`

	// Execution settings
	Workers int `validate:"min=1,max=256"`

	// Logging
	LogLevel  string `validate:"oneof=trace debug info warn warning error off disabled"`
	LogFormat string `validate:"oneof=console json"`

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Workers      int
	SuitePath    string
	NameFilter   string
	FailFast     bool
	OnlyFailed   bool
	OpenFailures bool
	NoBuiltin    bool
	ShowTuples   bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		SuitePath:      DefaultSuitePath,
		ResourceDir:    DefaultResourceDir,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Store:          DefaultStore,
		Workers:        DefaultWorkers,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		Flags:          Flags{Workers: DefaultWorkers},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config from defaults, the project's .env file and
// PARAMRUN_* environment variables. Variables already set in the process
// environment win over .env.
func Load(projectPath string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}

	envPath := filepath.Join(cfg.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envPath, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.SuitePath = getEnv("SUITE_PATH", c.SuitePath)
	c.ResourceDir = getEnv("RESOURCE_DIR", c.ResourceDir)
	c.OutputJSONDir = getEnv("OUTPUT_DIR", c.OutputJSONDir)
	c.OutputJSONFile = getEnv("OUTPUT_FILE", c.OutputJSONFile)
	c.Store = strings.ToLower(getEnv("STORE", c.Store))
	c.MySQLDSN = getEnv("MYSQL_DSN", c.MySQLDSN)
	c.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", c.LogLevel))
	c.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", c.LogFormat))
	if n, err := strconv.Atoi(getEnv("WORKERS", "")); err == nil {
		c.Workers = n
	}
}

// getEnv returns the trimmed PARAMRUN_ variable or def when unset
func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	if v == "" {
		return def
	}
	return v
}

// ApplyFlags stores flags and lets the ones that are set override config
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.SuitePath != "" {
		c.SuitePath = flags.SuitePath
	}
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetSuitePath returns the suite path resolved against the project path
func (c *Config) GetSuitePath() string {
	return c.resolve(c.SuitePath)
}

// GetResourceDir returns the resource root resolved against the project path
func (c *Config) GetResourceDir() string {
	return c.resolve(c.ResourceDir)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}
