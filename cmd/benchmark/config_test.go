package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, cfg.validate())
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
propagate:
  widths: [2, 4]
  iterations: 7
graph:
  scenarios:
    - name: tiny
      width: 3
      layers: 2
      sources: 2
      static_fraction: 0.5
      read_fraction: 1
      iterations: 10
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Propagate.Widths = []int{2, 4}
	want.Propagate.Iterations = 7
	want.Graph.Scenarios = []Scenario{{
		Name:           "tiny",
		Width:          3,
		Layers:         2,
		Sources:        2,
		StaticFraction: 0.5,
		ReadFraction:   1,
		Iterations:     10,
	}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown field", "propagate:\n  widht: [1]\n", "failed to parse YAML"},
		{"bad iterations", "propagate:\n  iterations: 0\n", "propagate.iterations"},
		{"bad width", "propagate:\n  widths: [0]\n", "must be positive"},
		{"missing name", "graph:\n  scenarios:\n    - width: 1\n", "name is required"},
		{"one layer", "graph:\n  scenarios:\n    - {name: x, width: 1, layers: 1, sources: 1, static_fraction: 1, iterations: 1}\n", "layers"},
		{"dynamic single source", "graph:\n  scenarios:\n    - {name: x, width: 1, layers: 2, sources: 1, static_fraction: 0.5, iterations: 1}\n", "at least 2 sources"},
		{"fraction", "graph:\n  scenarios:\n    - {name: x, width: 1, layers: 2, sources: 1, static_fraction: 1, read_fraction: 2, iterations: 1}\n", "read_fraction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
