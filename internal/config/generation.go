// Package config loads dataset generation parameters from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/tactile-data/braillegen/internal/dataset"
)

// GenerationConfig holds the knobs for a dataset generation run. The
// pointer fields let a JSON file override only a subset of values; fields
// omitted from the file keep their defaults, so partial configs are safe.
type GenerationConfig struct {
	// Stage selects the corpus: 1 (alphabet), 2 (contractions) or 3
	// (instruction tuning).
	Stage *int `json:"stage,omitempty"`
	// Count is the number of records to generate.
	Count *int `json:"count,omitempty"`
	// Seed fixes the random source; identical seeds reproduce identical
	// datasets byte for byte.
	Seed *int64 `json:"seed,omitempty"`
	// G1Ratio is the stage-2 proportion of Grade-1 examples blended in
	// to prevent catastrophic forgetting.
	G1Ratio *float64 `json:"g1_ratio,omitempty"`
	// Output is the JSONL path; a .gz suffix enables compression.
	Output *string `json:"output,omitempty"`

	// Stage-3 task distribution weights. Should sum to 1.
	RoundTripWeight   *float64 `json:"round_trip_weight,omitempty"`
	DiscoveryWeight   *float64 `json:"discovery_weight,omitempty"`
	CompressionWeight *float64 `json:"compression_weight,omitempty"`
	ReasoningWeight   *float64 `json:"reasoning_weight,omitempty"`
	SwarmWeight       *float64 `json:"swarm_weight,omitempty"`
}

func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// DefaultGenerationConfig returns the configuration the training recipe
// was tuned against.
func DefaultGenerationConfig() *GenerationConfig {
	w := dataset.DefaultTaskWeights()
	return &GenerationConfig{
		Stage:             ptrInt(3),
		Count:             ptrInt(50000),
		Seed:              ptrInt64(1),
		G1Ratio:           ptrFloat64(0.3),
		Output:            ptrString("instruction_tuning.jsonl"),
		RoundTripWeight:   ptrFloat64(w.RoundTrip),
		DiscoveryWeight:   ptrFloat64(w.Discovery),
		CompressionWeight: ptrFloat64(w.Compression),
		ReasoningWeight:   ptrFloat64(w.Reasoning),
		SwarmWeight:       ptrFloat64(w.Swarm),
	}
}

// LoadGenerationConfig loads a GenerationConfig from a JSON file and merges
// it over the defaults. The path is validated to have a .json extension and
// to be under the max file size.
func LoadGenerationConfig(path string) (*GenerationConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	loaded := &GenerationConfig{}
	if err := json.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := DefaultGenerationConfig()
	cfg.merge(loaded)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays non-nil fields from other.
func (c *GenerationConfig) merge(other *GenerationConfig) {
	if other.Stage != nil {
		c.Stage = other.Stage
	}
	if other.Count != nil {
		c.Count = other.Count
	}
	if other.Seed != nil {
		c.Seed = other.Seed
	}
	if other.G1Ratio != nil {
		c.G1Ratio = other.G1Ratio
	}
	if other.Output != nil {
		c.Output = other.Output
	}
	if other.RoundTripWeight != nil {
		c.RoundTripWeight = other.RoundTripWeight
	}
	if other.DiscoveryWeight != nil {
		c.DiscoveryWeight = other.DiscoveryWeight
	}
	if other.CompressionWeight != nil {
		c.CompressionWeight = other.CompressionWeight
	}
	if other.ReasoningWeight != nil {
		c.ReasoningWeight = other.ReasoningWeight
	}
	if other.SwarmWeight != nil {
		c.SwarmWeight = other.SwarmWeight
	}
}

func (c *GenerationConfig) validate() error {
	if c.Stage != nil && (*c.Stage < 1 || *c.Stage > 3) {
		return fmt.Errorf("stage must be 1, 2 or 3, got %d", *c.Stage)
	}
	if c.Count != nil && *c.Count < 1 {
		return fmt.Errorf("count must be positive, got %d", *c.Count)
	}
	if c.G1Ratio != nil && (*c.G1Ratio < 0 || *c.G1Ratio > 1) {
		return fmt.Errorf("g1_ratio must be in [0,1], got %g", *c.G1Ratio)
	}

	weights := []struct {
		name string
		v    *float64
	}{
		{"round_trip_weight", c.RoundTripWeight},
		{"discovery_weight", c.DiscoveryWeight},
		{"compression_weight", c.CompressionWeight},
		{"reasoning_weight", c.ReasoningWeight},
		{"swarm_weight", c.SwarmWeight},
	}
	for _, w := range weights {
		if w.v != nil && *w.v < 0 {
			return fmt.Errorf("%s must be non-negative, got %g", w.name, *w.v)
		}
	}
	tw := c.TaskWeights()
	total := tw.RoundTrip + tw.Discovery + tw.Compression + tw.Reasoning + tw.Swarm
	if math.Abs(total-1) > 1e-6 {
		return fmt.Errorf("task weights must sum to 1, got %g", total)
	}
	return nil
}

// TaskWeights converts the configured stage-3 distribution.
func (c *GenerationConfig) TaskWeights() dataset.TaskWeights {
	w := dataset.DefaultTaskWeights()
	if c.RoundTripWeight != nil {
		w.RoundTrip = *c.RoundTripWeight
	}
	if c.DiscoveryWeight != nil {
		w.Discovery = *c.DiscoveryWeight
	}
	if c.CompressionWeight != nil {
		w.Compression = *c.CompressionWeight
	}
	if c.ReasoningWeight != nil {
		w.Reasoning = *c.ReasoningWeight
	}
	if c.SwarmWeight != nil {
		w.Swarm = *c.SwarmWeight
	}
	return w
}
