// Package config provides the unified configuration system for Datascope.
// It defines a single Config structure used by the analysis driver, the CSV
// reader and the CLI, organized into logical sections:
//   - Performance: batch sizing and column-parallel worker count
//   - Analysis: null-like vocabulary, capture columns, capture bound
//   - Observability: logging and metrics
//
// Example usage:
//
//	cfg := config.NewDefault("orders")
//	cfg.Analysis.CaptureColumns = []int{0, 3}
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"runtime"
)

// DefaultMaxCaptureCount bounds the unique-value sample kept per captured
// column when no explicit bound is configured.
const DefaultMaxCaptureCount = 5000

// Config is the single configuration structure for an analysis run.
type Config struct {
	// Name identifies the dataset or run instance
	Name string `yaml:"name" json:"name"`

	// Performance settings control throughput and resource usage
	Performance PerformanceConfig `yaml:"performance" json:"performance"`

	// Analysis settings control cell classification and value capture
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`

	// Observability settings for monitoring and debugging
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// PerformanceConfig contains performance-related settings.
type PerformanceConfig struct {
	// BatchSize controls the number of rows the reader packs into one batch
	BatchSize int `yaml:"batch_size" json:"batch_size"`
	// Workers defines the number of concurrent column workers per batch
	// (0 = one per CPU)
	Workers int `yaml:"workers" json:"workers"`
}

// AnalysisConfig contains the classification and capture settings.
type AnalysisConfig struct {
	// NullLikeValues lists strings treated as missing-value markers.
	// Matching is case-insensitive and ignores surrounding whitespace.
	NullLikeValues []string `yaml:"null_like_values" json:"null_like_values"`
	// CaptureColumns lists zero-based column indices that record a bounded
	// sample of their distinct values
	CaptureColumns []int `yaml:"capture_columns" json:"capture_columns"`
	// MaxCaptureCount bounds the distinct-value sample per captured column
	MaxCaptureCount int `yaml:"max_capture_count" json:"max_capture_count"`
}

// ObservabilityConfig contains monitoring settings.
type ObservabilityConfig struct {
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`
	// EnableMetrics activates Prometheus metrics collection
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
}

// NewDefault creates a Config with production-ready defaults.
func NewDefault(name string) *Config {
	return &Config{
		Name: name,
		Performance: PerformanceConfig{
			BatchSize: 1000,
			Workers:   runtime.NumCPU(),
		},
		Analysis: AnalysisConfig{
			NullLikeValues:  []string{"null", "n/a", "na", "none", "nil"},
			CaptureColumns:  nil,
			MaxCaptureCount: DefaultMaxCaptureCount,
		},
		Observability: ObservabilityConfig{
			LogLevel:      "info",
			EnableMetrics: true,
		},
	}
}

// Validate validates the configuration for correctness.
// Callers should invoke it after loading configuration to catch errors early.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Performance.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	if c.Performance.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if c.Analysis.MaxCaptureCount <= 0 {
		return fmt.Errorf("max_capture_count must be positive")
	}
	for _, idx := range c.Analysis.CaptureColumns {
		if idx < 0 {
			return fmt.Errorf("capture column index cannot be negative: %d", idx)
		}
	}
	return nil
}

// GetWorkers returns the number of column workers, ensuring it's at least 1
func (p *PerformanceConfig) GetWorkers() int {
	if p.Workers <= 0 {
		return runtime.NumCPU()
	}
	return p.Workers
}
