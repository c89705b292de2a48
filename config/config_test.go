package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "label", cfg.Synthesis.Strategy)
	assert.Equal(t, ":", cfg.Synthesis.Marker)
	assert.True(t, cfg.Synthesis.PreferLabel)
	assert.Equal(t, "packages.yml", cfg.Output.Path)
	assert.Equal(t, "lax", cfg.Ontology.ReaderMode)
	assert.Contains(t, cfg.Ontology.Prefixes, "owl")
	assert.False(t, cfg.Watch.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty prefixes",
			mutate:  func(c *Config) { c.Ontology.Prefixes = nil },
			wantErr: "ontology.prefixes",
		},
		{
			name:    "bad prefix namespace",
			mutate:  func(c *Config) { c.Ontology.Prefixes = map[string]string{"ex": "not-absolute"} },
			wantErr: "ontology.prefixes",
		},
		{
			name:    "bad reader mode",
			mutate:  func(c *Config) { c.Ontology.ReaderMode = "loose" },
			wantErr: "reader_mode",
		},
		{
			name:    "bad strategy",
			mutate:  func(c *Config) { c.Synthesis.Strategy = "fancy" },
			wantErr: "synthesis.strategy",
		},
		{
			name:    "empty marker",
			mutate:  func(c *Config) { c.Synthesis.Marker = "" },
			wantErr: "synthesis.marker",
		},
		{
			name: "numeric strategy without vocab prefix",
			mutate: func(c *Config) {
				c.Synthesis.Strategy = "numeric"
				c.Synthesis.VocabPrefix = ""
			},
			wantErr: "vocab_prefix",
		},
		{
			name:    "empty output path",
			mutate:  func(c *Config) { c.Output.Path = "" },
			wantErr: "output.path",
		},
		{
			name:    "bad debounce delay",
			mutate:  func(c *Config) { c.Watch.DebounceDelay = "soon" },
			wantErr: "debounce_delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "espanso-ontology.yml")
	content := `
ontology:
  prefixes:
    owl: "http://www.w3.org/2002/07/owl#"
    iof: "https://spec.industrialontologies.org/ontology/core/Core/"
synthesis:
  strategy: numeric
  vocab_prefix: iof
  prefer_label: false
output:
  path: out/packages.yml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "numeric", cfg.Synthesis.Strategy)
	assert.Equal(t, "iof", cfg.Synthesis.VocabPrefix)
	assert.False(t, cfg.Synthesis.PreferLabel)
	assert.Equal(t, "out/packages.yml", cfg.Output.Path)
	// Unset fields keep their defaults.
	assert.Equal(t, ":", cfg.Synthesis.Marker)
	assert.Equal(t, "lax", cfg.Ontology.ReaderMode)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{
		Synthesis: SynthesisConfig{Strategy: "numeric", Marker: ";"},
		Output:    OutputConfig{Path: "custom.yml"},
		Watch:     WatchConfig{Enabled: true, DebounceDelay: "1s"},
	})

	assert.Equal(t, "numeric", cfg.Synthesis.Strategy)
	assert.Equal(t, ";", cfg.Synthesis.Marker)
	assert.Equal(t, "custom.yml", cfg.Output.Path)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, time.Second, cfg.Watch.GetDebounceDelay())
	// Fields absent from the overlay keep their values.
	assert.Equal(t, "bfo", cfg.Synthesis.VocabPrefix)

	cfg.Merge(nil)
	assert.Equal(t, "numeric", cfg.Synthesis.Strategy)
}

func TestGetDebounceDelayFallback(t *testing.T) {
	w := WatchConfig{}
	assert.Equal(t, 500*time.Millisecond, w.GetDebounceDelay())

	w.DebounceDelay = "garbage"
	assert.Equal(t, 500*time.Millisecond, w.GetDebounceDelay())
}
