// Package output defines the espanso match records and writes the
// packages.yml report file.
package output

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the report file written into the working directory.
const DefaultPath = "packages.yml"

// Match is one trigger → replacement pair for the text expander. Label is a
// human-readable description of the term and is omitted when empty.
type Match struct {
	Trigger string `yaml:"trigger"`
	Replace string `yaml:"replace"`
	Label   string `yaml:"label,omitempty"`
}

// MatchSet is the root object serialized to the report file: a single
// mapping with one matches key holding the ordered record list.
type MatchSet struct {
	Matches []Match `yaml:"matches"`
}

// Append adds records to the set, preserving order.
func (s *MatchSet) Append(matches ...Match) {
	s.Matches = append(s.Matches, matches...)
}

// Len returns the number of records in the set.
func (s *MatchSet) Len() int {
	return len(s.Matches)
}

// WriteFile serializes the set to YAML at path, replacing any existing file.
// The set is marshaled fully before the file is touched, so a marshal
// failure leaves the previous file intact.
func WriteFile(path string, set MatchSet) error {
	if set.Matches == nil {
		set.Matches = []Match{}
	}
	data, err := yaml.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}
