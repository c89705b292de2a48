// Package trigger converts extracted ontology terms into espanso match
// records. Two synthesis strategies exist: the default label strategy emits
// one record per term and degrades gracefully when a term has no English
// label; the numeric strategy replicates the BFO-style generator, emitting
// four records per term and failing hard on missing labels or local names
// that do not look like BFO_0000030.
package trigger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/krerkkiat/espanso-ontology/extract"
	"github.com/krerkkiat/espanso-ontology/output"
)

// Synthesis errors.
var (
	// ErrMissingLabel is returned by the numeric strategy for a term
	// without an English label.
	ErrMissingLabel = errors.New("term has no English label")

	// ErrMalformedLocalName is returned by the numeric strategy for a
	// local name that does not match <LETTERS>_<DIGITS>.
	ErrMalformedLocalName = errors.New("local name does not match <LETTERS>_<DIGITS>")

	// ErrTriggerConflict is returned when one rule binds the same trigger
	// to two different replacements.
	ErrTriggerConflict = errors.New("trigger already bound to a different replacement")

	// ErrUnknownStrategy is returned for an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("unknown synthesis strategy")
)

// Strategy names accepted in configuration.
const (
	StrategyNameLabel   = "label"
	StrategyNameNumeric = "numeric"
)

// Options configure trigger synthesis.
type Options struct {
	// Marker is prepended to every trigger (espanso convention ":").
	Marker string

	// VocabPrefix is the short vocabulary prefix baked into numeric
	// triggers and labels, e.g. "bfo".
	VocabPrefix string

	// PreferLabel makes the label strategy build triggers from the
	// English label when one exists, falling back to the qualified name.
	PreferLabel bool
}

// Candidate is a synthesized match tagged with the rule that produced it.
// Conflict detection is scoped per rule: the numeric-id and shortname rules
// may legitimately bind one trigger to different replacements.
type Candidate struct {
	Rule  string
	Match output.Match
}

// Strategy turns one ontology term into match candidates.
type Strategy interface {
	// Name returns the configuration name of the strategy.
	Name() string

	// Term synthesizes the candidates for a single term.
	Term(term extract.OntologyTerm, kind extract.SubjectKind) ([]Candidate, error)
}

// New returns the strategy registered under name.
func New(name string, opts Options) (Strategy, error) {
	switch name {
	case "", StrategyNameLabel:
		return &LabelStrategy{opts: opts}, nil
	case StrategyNameNumeric:
		return &NumericStrategy{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Synthesizer runs a strategy over a term batch, deduplicating identical
// records and rejecting per-rule trigger conflicts.
type Synthesizer struct {
	strategy Strategy
	logger   *slog.Logger
}

// NewSynthesizer creates a Synthesizer. A nil logger falls back to
// slog.Default().
func NewSynthesizer(strategy Strategy, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{strategy: strategy, logger: logger}
}

// Synthesize converts a term batch into match records, preserving term
// order. Any strategy failure aborts the whole batch with no partial result.
func (s *Synthesizer) Synthesize(terms []extract.OntologyTerm, kind extract.SubjectKind) ([]output.Match, error) {
	var matches []output.Match
	bound := make(map[string]string)
	dropped := 0

	for _, term := range terms {
		candidates, err := s.strategy.Term(term, kind)
		if err != nil {
			return nil, fmt.Errorf("term %s: %w", term.QualifiedName, err)
		}
		for _, c := range candidates {
			key := c.Rule + "\x00" + c.Match.Trigger
			if prev, ok := bound[key]; ok {
				if prev == c.Match.Replace {
					dropped++
					continue
				}
				return nil, fmt.Errorf("%w: rule %s trigger %q (%q vs %q)",
					ErrTriggerConflict, c.Rule, c.Match.Trigger, prev, c.Match.Replace)
			}
			bound[key] = c.Match.Replace
			matches = append(matches, c.Match)
		}
	}

	s.logger.Debug("synthesis pass complete",
		"kind", kind.String(),
		"strategy", s.strategy.Name(),
		"matches", len(matches),
		"duplicates_dropped", dropped)
	return matches, nil
}

// hyphenate replaces the spaces of a label with hyphens.
func hyphenate(label string) string {
	return strings.ReplaceAll(label, " ", "-")
}
