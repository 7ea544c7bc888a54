// Package config loads tuning parameters for the resampling transforms.
// Thresholds omitted from the JSON file fall back to hard-coded defaults
// via the Get* accessors, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TuningConfig represents the root configuration for resampling parameters.
// All fields are optional; nil means "use the default".
type TuningConfig struct {
	// Quality thresholds
	GoodFractionBadThreshold           *float64 `json:"goodfraction_bad_threshold,omitempty"`
	GoodFractionIndeterminateThreshold *float64 `json:"goodfraction_indeterminate_threshold,omitempty"`

	// Transform behavior
	FilterBadQC *bool `json:"filter_bad_qc,omitempty"`
	AddMetrics  *bool `json:"add_metrics,omitempty"`

	// Quick-look plotting
	QuicklookEnabled *bool   `json:"quicklook_enabled,omitempty"`
	QuicklookDir     *string `json:"quicklook_dir,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the
// max file size. Fields omitted from the JSON file retain their default
// values, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.GoodFractionBadThreshold != nil {
		if *c.GoodFractionBadThreshold < 0 || *c.GoodFractionBadThreshold > 1 {
			return fmt.Errorf("goodfraction_bad_threshold must be between 0 and 1, got %f",
				*c.GoodFractionBadThreshold)
		}
	}
	if c.GoodFractionIndeterminateThreshold != nil {
		if *c.GoodFractionIndeterminateThreshold < 0 || *c.GoodFractionIndeterminateThreshold > 1 {
			return fmt.Errorf("goodfraction_indeterminate_threshold must be between 0 and 1, got %f",
				*c.GoodFractionIndeterminateThreshold)
		}
	}
	if c.GoodFractionBadThreshold != nil && c.GoodFractionIndeterminateThreshold != nil {
		if *c.GoodFractionIndeterminateThreshold < *c.GoodFractionBadThreshold {
			return fmt.Errorf("goodfraction_indeterminate_threshold (%f) must be >= goodfraction_bad_threshold (%f)",
				*c.GoodFractionIndeterminateThreshold, *c.GoodFractionBadThreshold)
		}
	}
	return nil
}

// GetGoodFractionBadThreshold returns the goodfraction_bad_threshold value or the default.
func (c *TuningConfig) GetGoodFractionBadThreshold() float64 {
	if c.GoodFractionBadThreshold == nil {
		return 0.5 // default
	}
	return *c.GoodFractionBadThreshold
}

// GetGoodFractionIndeterminateThreshold returns the goodfraction_indeterminate_threshold value or the default.
func (c *TuningConfig) GetGoodFractionIndeterminateThreshold() float64 {
	if c.GoodFractionIndeterminateThreshold == nil {
		return 0.9 // default
	}
	return *c.GoodFractionIndeterminateThreshold
}

// GetFilterBadQC returns the filter_bad_qc value or the default.
func (c *TuningConfig) GetFilterBadQC() bool {
	if c.FilterBadQC == nil {
		return true // default: bad samples excluded from averaging
	}
	return *c.FilterBadQC
}

// GetAddMetrics returns the add_metrics value or the default.
func (c *TuningConfig) GetAddMetrics() bool {
	if c.AddMetrics == nil {
		return true // default: std and goodfraction variables produced
	}
	return *c.AddMetrics
}

// GetQuicklookEnabled returns the quicklook_enabled value or the default.
func (c *TuningConfig) GetQuicklookEnabled() bool {
	if c.QuicklookEnabled == nil {
		return false // default: no quick-look output
	}
	return *c.QuicklookEnabled
}

// GetQuicklookDir returns the quicklook_dir value or the default.
func (c *TuningConfig) GetQuicklookDir() string {
	if c.QuicklookDir == nil || *c.QuicklookDir == "" {
		return "quicklooks"
	}
	return *c.QuicklookDir
}
