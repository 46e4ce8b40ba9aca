package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Propagate PropagateConfig `yaml:"propagate"`
	Graph     GraphConfig     `yaml:"graph"`
}

// PropagateConfig describes a grid of chains hanging off one source:
// Widths chains, each Heights properties deep.
type PropagateConfig struct {
	Widths     []int `yaml:"widths"`
	Heights    []int `yaml:"heights"`
	Iterations int   `yaml:"iterations"`
}

type GraphConfig struct {
	Repeats   int        `yaml:"repeats"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is one layered graph. Every property reads Sources properties of
// the previous layer; a property is dynamic (skips one of them depending on
// the first value read) with probability 1-StaticFraction.
type Scenario struct {
	Name           string  `yaml:"name"`
	Width          int64   `yaml:"width"`
	Layers         int64   `yaml:"layers"`
	Sources        int64   `yaml:"sources"`
	StaticFraction float64 `yaml:"static_fraction"`
	ReadFraction   float64 `yaml:"read_fraction"`
	Iterations     int64   `yaml:"iterations"`
}

// Writes are pushed eagerly along every path, so the evaluation count grows
// with Sources^Layers. Keep that product small.
func DefaultConfig() Config {
	return Config{
		Propagate: PropagateConfig{
			Widths:     []int{1, 10, 100, 1_000},
			Heights:    []int{1, 10, 100, 1_000},
			Iterations: 100,
		},
		Graph: GraphConfig{
			Repeats: 5,
			Scenarios: []Scenario{
				{
					Name:           "simple component",
					Width:          10,
					Layers:         5,
					Sources:        2,
					StaticFraction: 1,
					ReadFraction:   0.2,
					Iterations:     100_000,
				},
				{
					Name:           "dynamic component",
					Width:          10,
					Layers:         6,
					Sources:        3,
					StaticFraction: 0.75,
					ReadFraction:   0.2,
					Iterations:     10_000,
				},
				{
					Name:           "large web app",
					Width:          1_000,
					Layers:         4,
					Sources:        2,
					StaticFraction: 0.95,
					ReadFraction:   1,
					Iterations:     5_000,
				},
				{
					Name:           "wide dense",
					Width:          1_000,
					Layers:         3,
					Sources:        8,
					StaticFraction: 1,
					ReadFraction:   1,
					Iterations:     3_000,
				},
				{
					Name:           "deep",
					Width:          5,
					Layers:         200,
					Sources:        1,
					StaticFraction: 1,
					ReadFraction:   1,
					Iterations:     2_000,
				},
			},
		},
	}
}

// LoadConfig overlays the YAML file at path on DefaultConfig. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Propagate.Iterations < 1 {
		return fmt.Errorf("propagate.iterations must be positive")
	}
	for _, n := range append(append([]int(nil), c.Propagate.Widths...), c.Propagate.Heights...) {
		if n < 1 {
			return fmt.Errorf("propagate widths and heights must be positive, got %d", n)
		}
	}
	if c.Graph.Repeats < 1 {
		return fmt.Errorf("graph.repeats must be positive")
	}
	for i, s := range c.Graph.Scenarios {
		if err := s.validate(); err != nil {
			return fmt.Errorf("scenario %d (%q): %w", i, s.Name, err)
		}
	}
	return nil
}

func (s *Scenario) validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("name is required")
	case s.Width < 1:
		return fmt.Errorf("width must be positive")
	case s.Layers < 2:
		return fmt.Errorf("layers must be at least 2")
	case s.Sources < 1:
		return fmt.Errorf("sources must be positive")
	case s.StaticFraction < 0 || s.StaticFraction > 1:
		return fmt.Errorf("static_fraction must be within [0, 1]")
	case s.ReadFraction < 0 || s.ReadFraction > 1:
		return fmt.Errorf("read_fraction must be within [0, 1]")
	case s.Iterations < 1:
		return fmt.Errorf("iterations must be positive")
	}
	if s.StaticFraction < 1 && s.Sources < 2 {
		return fmt.Errorf("dynamic properties need at least 2 sources")
	}
	return nil
}
