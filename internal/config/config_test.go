package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.N != 6 {
		t.Errorf("N = %d, want 6", cfg.N)
	}
	if cfg.StatementsMin != 1 || cfg.StatementsMax != 1 {
		t.Errorf("statement bounds = [%d, %d], want [1, 1]", cfg.StatementsMin, cfg.StatementsMax)
	}
	if cfg.HasShill {
		t.Error("HasShill = true, want false")
	}
	if !cfg.AllowCountStatements {
		t.Error("AllowCountStatements = false, want true")
	}
	if cfg.MaxAttempts != 100 {
		t.Errorf("MaxAttempts = %d, want 100", cfg.MaxAttempts)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.CacheFile != ".lycan/truth_cache.txt" {
		t.Errorf("CacheFile = %q", cfg.CacheFile)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `n: 5
statements_min: 2
statements_max: 3
has_shill: true
max_attempts: 250
log_level: debug
cache_file: /tmp/cache.txt
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.N != 5 {
		t.Errorf("N = %d, want 5", cfg.N)
	}
	if cfg.StatementsMin != 2 || cfg.StatementsMax != 3 {
		t.Errorf("statement bounds = [%d, %d], want [2, 3]", cfg.StatementsMin, cfg.StatementsMax)
	}
	if !cfg.HasShill {
		t.Error("HasShill = false, want true")
	}
	if cfg.MaxAttempts != 250 {
		t.Errorf("MaxAttempts = %d, want 250", cfg.MaxAttempts)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	// Unspecified fields keep defaults.
	if cfg.CandidatePoolSize != 50 {
		t.Errorf("CandidatePoolSize = %d, want 50", cfg.CandidatePoolSize)
	}
}

// TestLoadConfigMissingFile returns defaults without error
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil for missing file", err)
	}
	if cfg.N != 6 {
		t.Errorf("N = %d, want default 6", cfg.N)
	}
}

// TestLoadConfigMalformed returns an error for bad YAML
func TestLoadConfigMalformed(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("n: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig() error = nil, want parse error")
	}
}

// TestValidate rejects out-of-range values
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"n too small", func(c *Config) { c.N = 1 }},
		{"n too large", func(c *Config) { c.N = 30 }},
		{"zero statements", func(c *Config) { c.StatementsMin = 0 }},
		{"inverted bounds", func(c *Config) { c.StatementsMin = 3; c.StatementsMax = 2 }},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

// TestGeneratorConfig maps app settings onto the generator
func TestGeneratorConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 4
	cfg.HasShill = true
	cfg.AllowCountStatements = false
	cfg.MaxCountStatements = 2

	gc := cfg.GeneratorConfig()
	if gc.N != 4 {
		t.Errorf("N = %d, want 4", gc.N)
	}
	if !gc.HasShill {
		t.Error("HasShill = false, want true")
	}
	if !gc.Library.DisableCounts {
		t.Error("DisableCounts = false, want true")
	}
	if gc.MaxCountStatements != 2 {
		t.Errorf("MaxCountStatements = %d, want 2", gc.MaxCountStatements)
	}
}
