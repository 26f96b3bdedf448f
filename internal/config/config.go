package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"subpredict/internal/logging"
	"subpredict/internal/model"
	"subpredict/internal/predict"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all subpredict configuration.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Update   UpdateConfig   `yaml:"update"`
}

// EngineConfig describes the annotation engine binary.
type EngineConfig struct {
	Executable string `yaml:"executable"`
	Version    string `yaml:"version"` // Installed engine version, used by --update
}

// AnalysisConfig holds the values passed through to every engine call.
type AnalysisConfig struct {
	DBDir   string `yaml:"db_dir"`
	GffType string `yaml:"gff_type"` // prodigal or NCBI_prok
	Threads int    `yaml:"threads"`
}

// LoggingConfig configures the console and file sinks.
type LoggingConfig struct {
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
	File         string `yaml:"file"`
}

// UpdateConfig names the GitHub repository whose tags are checked by --update.
type UpdateConfig struct {
	Owner      string `yaml:"owner"`
	Repository string `yaml:"repository"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Executable: predict.DefaultExecutable,
		},
		Analysis: AnalysisConfig{
			GffType: string(model.GffProdigal),
			Threads: 8,
		},
		Logging: LoggingConfig{
			ConsoleLevel: "info",
			FileLevel:    "debug",
			File:         logging.DefaultFilePath,
		},
		Update: UpdateConfig{
			Owner:      "linnabrown",
			Repository: "run_dbcan",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies SUBPREDICT_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SUBPREDICT_DB_DIR"); v != "" {
		c.Analysis.DBDir = v
	}
	if v := os.Getenv("SUBPREDICT_EXECUTABLE"); v != "" {
		c.Engine.Executable = v
	}
	if v := os.Getenv("SUBPREDICT_GFF_TYPE"); v != "" {
		c.Analysis.GffType = v
	}
	if v := os.Getenv("SUBPREDICT_THREADS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SUBPREDICT_THREADS=%q is not a number", ErrInvalid, v)
		}
		c.Analysis.Threads = n
	}
	if v := os.Getenv("SUBPREDICT_LOG_LEVEL"); v != "" {
		c.Logging.ConsoleLevel = v
	}
	return nil
}

// Validate checks the fields needed to run an analysis.
func (c *Config) Validate() error {
	if c.Engine.Executable == "" {
		return fmt.Errorf("%w: engine.executable is empty", ErrInvalid)
	}
	if c.Analysis.DBDir == "" {
		return fmt.Errorf("%w: analysis.db_dir is required", ErrInvalid)
	}
	if _, err := model.ParseGffType(c.Analysis.GffType); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Analysis.Threads <= 0 {
		return fmt.Errorf("%w: analysis.threads must be positive, got %d", ErrInvalid, c.Analysis.Threads)
	}
	return nil
}

// Params converts the analysis section for the predictor. Call Validate first.
func (c *Config) Params() predict.Params {
	return predict.Params{
		DBDir:   c.Analysis.DBDir,
		GffType: model.GffType(c.Analysis.GffType),
		Threads: c.Analysis.Threads,
	}
}

// LogConfig converts the logging section for logging.New.
func (c *Config) LogConfig() logging.Config {
	return logging.Config{
		ConsoleLevel: c.Logging.ConsoleLevel,
		FileLevel:    c.Logging.FileLevel,
		FilePath:     c.Logging.File,
	}
}
