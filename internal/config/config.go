// Package config loads CLI configuration from a YAML file and fills in the
// engine defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seqwell/seqwell/internal/search"
)

// Config is the user-tunable search configuration.
type Config struct {
	// MaxRank caps how deep decomposing strategies may recurse.
	MaxRank int `yaml:"max_rank"`
	// MaxSteps caps scheduler iterations per search.
	MaxSteps int `yaml:"max_steps"`
	// History is the path of the SQLite history database; empty disables
	// history recording.
	History string `yaml:"history"`
	// Algorithms is the strategy list, in evaluation order.
	Algorithms []string `yaml:"algorithms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxRank:    search.DefaultMaxRank,
		MaxSteps:   search.DefaultMaxSteps,
		Algorithms: search.DefaultAlgorithmNames(),
	}
}

// Load reads a configuration file. Omitted fields keep their defaults;
// unknown fields are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks budgets and strategy names.
func (c Config) Validate() error {
	if c.MaxRank < 0 {
		return fmt.Errorf("max_rank must not be negative, got %d", c.MaxRank)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps)
	}
	if len(c.Algorithms) == 0 {
		return errors.New("algorithms must not be empty")
	}
	for _, name := range c.Algorithms {
		if !search.KnownAlgorithmName(name) {
			return fmt.Errorf("unknown algorithm %q", name)
		}
	}
	return nil
}

// BuildAlgorithms instantiates the configured strategy list.
func (c Config) BuildAlgorithms() ([]search.Algorithm, error) {
	algorithms := make([]search.Algorithm, len(c.Algorithms))
	for i, name := range c.Algorithms {
		a, err := search.NewAlgorithm(name)
		if err != nil {
			return nil, err
		}
		algorithms[i] = a
	}
	return algorithms, nil
}
