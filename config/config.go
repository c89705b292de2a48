// Package config provides configuration loading and management for
// espanso-ontology.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/krerkkiat/espanso-ontology/output"
	"github.com/krerkkiat/espanso-ontology/trigger"
	"github.com/krerkkiat/espanso-ontology/vocabulary"
)

// Config is the complete espanso-ontology configuration.
type Config struct {
	Ontology  OntologyConfig  `yaml:"ontology"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Output    OutputConfig    `yaml:"output"`
	Watch     WatchConfig     `yaml:"watch"`
}

// OntologyConfig configures graph loading and name qualification.
type OntologyConfig struct {
	// Prefixes is the namespace prefix table used to qualify IRIs.
	Prefixes map[string]string `yaml:"prefixes"`

	// ReaderMode is the RDF/XML reader mode ("lax" or "strict").
	ReaderMode string `yaml:"reader_mode"`
}

// SynthesisConfig configures trigger synthesis.
type SynthesisConfig struct {
	// Strategy selects the synthesis strategy ("label" or "numeric").
	Strategy string `yaml:"strategy"`

	// Marker is the character prepended to every trigger.
	Marker string `yaml:"marker"`

	// VocabPrefix is the vocabulary prefix used by the numeric strategy.
	VocabPrefix string `yaml:"vocab_prefix"`

	// PreferLabel makes the label strategy trigger on hyphenated labels.
	PreferLabel bool `yaml:"prefer_label"`
}

// OutputConfig configures the report writer.
type OutputConfig struct {
	// Path is the report file path.
	Path string `yaml:"path"`
}

// WatchConfig configures ontology file watching.
type WatchConfig struct {
	// Enabled regenerates the report whenever an input file changes.
	Enabled bool `yaml:"enabled"`

	// DebounceDelay is how long to wait for more changes before
	// regenerating (duration string, default 500ms).
	DebounceDelay string `yaml:"debounce_delay"`
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Ontology: OntologyConfig{
			Prefixes:   vocabulary.DefaultPrefixes(),
			ReaderMode: "lax",
		},
		Synthesis: SynthesisConfig{
			Strategy:    trigger.StrategyNameLabel,
			Marker:      ":",
			VocabPrefix: "bfo",
			PreferLabel: true,
		},
		Output: OutputConfig{
			Path: output.DefaultPath,
		},
		Watch: WatchConfig{
			Enabled:       false,
			DebounceDelay: "500ms",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Ontology.Prefixes) == 0 {
		return fmt.Errorf("ontology.prefixes is required")
	}
	if _, err := vocabulary.NewPrefixMap(c.Ontology.Prefixes); err != nil {
		return fmt.Errorf("ontology.prefixes: %w", err)
	}
	switch c.Ontology.ReaderMode {
	case "", "lax", "strict":
	default:
		return fmt.Errorf("ontology.reader_mode must be lax or strict")
	}
	switch c.Synthesis.Strategy {
	case "", trigger.StrategyNameLabel, trigger.StrategyNameNumeric:
	default:
		return fmt.Errorf("synthesis.strategy must be %s or %s",
			trigger.StrategyNameLabel, trigger.StrategyNameNumeric)
	}
	if c.Synthesis.Marker == "" {
		return fmt.Errorf("synthesis.marker is required")
	}
	if c.Synthesis.Strategy == trigger.StrategyNameNumeric && c.Synthesis.VocabPrefix == "" {
		return fmt.Errorf("synthesis.vocab_prefix is required for the numeric strategy")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.Watch.DebounceDelay != "" {
		if _, err := time.ParseDuration(c.Watch.DebounceDelay); err != nil {
			return fmt.Errorf("watch.debounce_delay: %w", err)
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, layered over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.Ontology.Prefixes) > 0 {
		c.Ontology.Prefixes = other.Ontology.Prefixes
	}
	if other.Ontology.ReaderMode != "" {
		c.Ontology.ReaderMode = other.Ontology.ReaderMode
	}

	if other.Synthesis.Strategy != "" {
		c.Synthesis.Strategy = other.Synthesis.Strategy
	}
	if other.Synthesis.Marker != "" {
		c.Synthesis.Marker = other.Synthesis.Marker
	}
	if other.Synthesis.VocabPrefix != "" {
		c.Synthesis.VocabPrefix = other.Synthesis.VocabPrefix
	}

	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}

	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
}
