package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/panbanda/mulemeter/pkg/models"
)

// Config holds all configuration options for mulemeter.
type Config struct {
	// Discovery settings for locating Mule projects.
	Discovery DiscoveryConfig `koanf:"discovery" toml:"discovery"`

	// Thresholds for classifying files and expressions.
	Thresholds ThresholdConfig `koanf:"thresholds" toml:"thresholds"`

	// Weights for the complexity score formula.
	Weights models.ComplexityWeights `koanf:"weights" toml:"weights"`

	// Risk banding boundaries for human-facing summaries.
	Risk models.RiskThresholds `koanf:"risk" toml:"risk"`

	// Cache settings.
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings.
	Output OutputConfig `koanf:"output" toml:"output"`
}

// DiscoveryConfig controls how project roots are located.
type DiscoveryConfig struct {
	// MaxDepth bounds how far below the scan root project directories are
	// searched for.
	MaxDepth int `koanf:"max_depth" toml:"max_depth"`
	// Projects optionally restricts analysis to directories with these names.
	Projects []string `koanf:"projects" toml:"projects"`
	// Workers is the number of projects analyzed concurrently. 1 keeps the
	// run fully sequential.
	Workers int `koanf:"workers" toml:"workers"`
}

// ThresholdConfig defines metric thresholds.
type ThresholdConfig struct {
	LargeFileLines        int `koanf:"large_file_lines" toml:"large_file_lines"`
	ComplexExpressionSpan int `koanf:"complex_expression_span" toml:"complex_expression_span"`
	ComplexDWLFileLines   int `koanf:"complex_dwl_file_lines" toml:"complex_dwl_file_lines"`
}

// CacheConfig controls caching of per-file analysis results.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, yaml
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			MaxDepth: 4,
			Workers:  1,
		},
		Thresholds: ThresholdConfig{
			LargeFileLines:        1000,
			ComplexExpressionSpan: 10,
			ComplexDWLFileLines:   100,
		},
		Weights: models.DefaultComplexityWeights(),
		Risk:    models.DefaultRiskThresholds(),
		Cache: CacheConfig{
			Enabled: false,
			Dir:     ".mulemeter/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, merged over defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"mulemeter.toml",
		"mulemeter.yaml",
		"mulemeter.yml",
		"mulemeter.json",
		".mulemeter.toml",
		".mulemeter.yaml",
		".mulemeter.yml",
		".mulemeter.json",
	}

	searchDirs := []string{".", ".mulemeter"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
