// Package config loads lycan configuration from YAML, with defaults that
// work without any file present. CLI flags override file settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrison/lycan/internal/generator"
)

// Config represents lycan configuration options.
type Config struct {
	// N is the number of villagers.
	N int `yaml:"n"`

	// StatementsMin is the minimum statements per speaker.
	StatementsMin int `yaml:"statements_min"`

	// StatementsMax is the maximum statements per speaker.
	StatementsMax int `yaml:"statements_max"`

	// HasShill enables shill mode: exactly one non-werewolf lies.
	HasShill bool `yaml:"has_shill"`

	// AllowSelfReference lets a speaker utter statements about themselves.
	AllowSelfReference bool `yaml:"allow_self_reference"`

	// AllowCountStatements enables the count statement variants.
	AllowCountStatements bool `yaml:"allow_count_statements"`

	// MaxCountStatements caps count statements per puzzle (-1 = no cap).
	MaxCountStatements int `yaml:"max_count_statements"`

	// RequireRelationship rejects puzzles with no pair statement.
	RequireRelationship bool `yaml:"require_relationship"`

	// MinWerewolves is the minimum werewolves in the target (0 = default).
	MinWerewolves int `yaml:"min_werewolves"`

	// MaxWerewolves is the maximum werewolves in the target (0 = default).
	MaxWerewolves int `yaml:"max_werewolves"`

	// MaxAttempts bounds generation restarts.
	MaxAttempts int `yaml:"max_attempts"`

	// CandidatePoolSize bounds sampled bundles per speaker and size.
	CandidatePoolSize int `yaml:"candidate_pool_size"`

	// CacheFile is the truth-cache location.
	CacheFile string `yaml:"cache_file"`

	// DBPath is the puzzle archive location for batch runs.
	DBPath string `yaml:"db_path"`

	// LogLevel sets logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// MaxConcurrency is the batch worker count (0 = number of CPUs).
	MaxConcurrency int `yaml:"max_concurrency"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		N:                    6,
		StatementsMin:        1,
		StatementsMax:        1,
		HasShill:             false,
		AllowCountStatements: true,
		MaxCountStatements:   -1,
		MaxAttempts:          100,
		CandidatePoolSize:    50,
		CacheFile:            ".lycan/truth_cache.txt",
		DBPath:               ".lycan/puzzles.db",
		LogLevel:             "info",
		MaxConcurrency:       0,
	}
}

// LoadConfig loads configuration from the specified file path. A missing
// file returns the defaults without error; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first defect in the configuration.
func (c *Config) Validate() error {
	if c.N < 2 || c.N > 20 {
		return fmt.Errorf("config: n=%d outside [2, 20]", c.N)
	}
	if c.StatementsMin < 1 || c.StatementsMax < c.StatementsMin {
		return fmt.Errorf("config: statement bounds [%d, %d] invalid", c.StatementsMin, c.StatementsMax)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("config: max_attempts must be positive, have %d", c.MaxAttempts)
	}
	switch c.LogLevel {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// GeneratorConfig maps the app configuration onto the generator's.
func (c *Config) GeneratorConfig() generator.Config {
	gc := generator.DefaultConfig(c.N)
	gc.StatementsMin = c.StatementsMin
	gc.StatementsMax = c.StatementsMax
	gc.HasShill = c.HasShill
	gc.AllowSelfReference = c.AllowSelfReference
	gc.MaxCountStatements = c.MaxCountStatements
	gc.RequireRelationship = c.RequireRelationship
	gc.MinWerewolves = c.MinWerewolves
	gc.MaxWerewolves = c.MaxWerewolves
	gc.MaxAttempts = c.MaxAttempts
	gc.CandidatePoolSize = c.CandidatePoolSize
	gc.Library.DisableCounts = !c.AllowCountStatements
	return gc
}
