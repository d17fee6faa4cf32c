package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Setback.SamplePoints != 8 {
		t.Errorf("sample points = %d, want 8", cfg.Setback.SamplePoints)
	}
	if cfg.Classify.MinConfidence != 0.5 {
		t.Errorf("min confidence = %f, want 0.5", cfg.Classify.MinConfidence)
	}
	if cfg.Ingest.DefaultScaleRatio != 48 {
		t.Errorf("scale ratio = %f, want 48", cfg.Ingest.DefaultScaleRatio)
	}
}

func TestLoadFromFile_PartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plancheck.yaml")
	content := "setback:\n  sample_points: 16\nclassify:\n  min_confidence: 0.7\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Setback.SamplePoints != 16 {
		t.Errorf("sample points = %d, want 16", cfg.Setback.SamplePoints)
	}
	if cfg.Classify.MinConfidence != 0.7 {
		t.Errorf("min confidence = %f, want 0.7", cfg.Classify.MinConfidence)
	}
	// Untouched sections keep their defaults.
	if cfg.Rules.TopK != 5 {
		t.Errorf("top_k = %d, want default 5", cfg.Rules.TopK)
	}
}

func TestLoadFromFile_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plancheck.yaml")
	if err := os.WriteFile(path, []byte("classify:\n  min_confidence: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromFile(path)
	if err == nil || !strings.Contains(err.Error(), "min_confidence") {
		t.Errorf("err = %v, want min_confidence validation failure", err)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
