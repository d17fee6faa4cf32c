// Package config provides configuration loading for the plan checker.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete checker configuration.
type Config struct {
	Ingest   IngestConfig   `yaml:"ingest"`
	Classify ClassifyConfig `yaml:"classify"`
	Setback  SetbackConfig  `yaml:"setback"`
	Rules    RulesConfig    `yaml:"rules"`
	Evaluate EvaluateConfig `yaml:"evaluate"`
}

// IngestConfig configures PDF extraction.
type IngestConfig struct {
	// DefaultScaleRatio is the assumed drawing scale denominator for
	// sheets without a scale annotation (48 means 1/4" = 1'-0").
	DefaultScaleRatio float64 `yaml:"default_scale_ratio"`
	// MinLineLength drops vector segments shorter than this many feet.
	MinLineLength float64 `yaml:"min_line_length"`
}

// ClassifyConfig configures component classification.
type ClassifyConfig struct {
	// MinConfidence flags components below this classification
	// confidence for review (0.0-1.0).
	MinConfidence float64 `yaml:"min_confidence"`
}

// SetbackConfig configures geometric setback measurement.
type SetbackConfig struct {
	// SamplePoints is the number of measurement points per footprint edge.
	SamplePoints int `yaml:"sample_points"`
}

// RulesConfig configures rule retrieval.
type RulesConfig struct {
	// TopK is the number of free-text retrieval results per component.
	TopK int `yaml:"top_k"`
	// TopM is the number of keyword retrieval results per component.
	TopM int `yaml:"top_m"`
	// QueryTimeout is the per-query budget.
	QueryTimeout time.Duration `yaml:"query_timeout"`
	// Retries is the number of retry attempts after a failed query.
	Retries int `yaml:"retries"`
}

// EvaluateConfig configures evaluation.
type EvaluateConfig struct {
	// Workers bounds the evaluation worker pool.
	Workers int `yaml:"workers"`
}

// Default returns a Config with the standard defaults.
func Default() *Config {
	return &Config{
		Ingest: IngestConfig{
			DefaultScaleRatio: 48,
			MinLineLength:     0,
		},
		Classify: ClassifyConfig{
			MinConfidence: 0.5,
		},
		Setback: SetbackConfig{
			SamplePoints: 8,
		},
		Rules: RulesConfig{
			TopK:         5,
			TopM:         5,
			QueryTimeout: 5 * time.Second,
			Retries:      2,
		},
		Evaluate: EvaluateConfig{
			Workers: 4,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Classify.MinConfidence < 0 || c.Classify.MinConfidence > 1 {
		return fmt.Errorf("classify.min_confidence must be between 0 and 1")
	}
	if c.Setback.SamplePoints < 1 {
		return fmt.Errorf("setback.sample_points must be at least 1")
	}
	if c.Rules.TopK < 1 || c.Rules.TopM < 1 {
		return fmt.Errorf("rules.top_k and rules.top_m must be at least 1")
	}
	if c.Evaluate.Workers < 1 {
		return fmt.Errorf("evaluate.workers must be at least 1")
	}
	if c.Ingest.DefaultScaleRatio <= 0 {
		return fmt.Errorf("ingest.default_scale_ratio must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, applied over the
// defaults so partial files work.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
