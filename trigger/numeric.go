package trigger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/krerkkiat/espanso-ontology/extract"
	"github.com/krerkkiat/espanso-ontology/output"
	"github.com/krerkkiat/espanso-ontology/vocabulary"
)

// Rule names for the numeric strategy.
const (
	ruleNumericID      = "numeric-id"
	ruleNumericLabel   = "numeric-label"
	ruleShortnameID    = "shortname-id"
	ruleShortnameLabel = "shortname-label"
)

// localNamePattern is the BFO-style local name shape, e.g. BFO_0000030.
var localNamePattern = regexp.MustCompile(`^[A-Za-z]+_([0-9]+)$`)

// NumericStrategy replicates the BFO numeric generator. Each term yields
// four records: the numeric suffix and the label shortname each trigger both
// the qualified name and the vocabulary-prefixed hyphenated label. A term
// without an English label or with a local name outside <LETTERS>_<DIGITS>
// aborts the batch.
type NumericStrategy struct {
	opts Options
}

// Name returns the configuration name of the strategy.
func (s *NumericStrategy) Name() string { return StrategyNameNumeric }

// Term synthesizes the four candidates for a term.
func (s *NumericStrategy) Term(term extract.OntologyTerm, kind extract.SubjectKind) ([]Candidate, error) {
	if term.Label == "" {
		return nil, ErrMissingLabel
	}

	local := vocabulary.LocalName(term.QualifiedName)
	m := localNamePattern.FindStringSubmatch(local)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedLocalName, local)
	}

	suffix := strings.TrimLeft(m[1], "0")
	if suffix == "" {
		suffix = "0"
	}

	vocabLabel := s.opts.VocabPrefix + ":" + hyphenate(term.Label)
	annotation := vocabLabel + " (" + kind.String() + "; " + term.QualifiedName + ")"
	numericTrigger := s.opts.Marker + s.opts.VocabPrefix + "-" + suffix
	shortnameTrigger := s.opts.Marker + s.opts.VocabPrefix + "-" + shortname(term.Label)

	return []Candidate{
		{Rule: ruleNumericID, Match: output.Match{Trigger: numericTrigger, Replace: term.QualifiedName, Label: annotation}},
		{Rule: ruleNumericLabel, Match: output.Match{Trigger: numericTrigger, Replace: vocabLabel, Label: annotation}},
		{Rule: ruleShortnameID, Match: output.Match{Trigger: shortnameTrigger, Replace: term.QualifiedName, Label: annotation}},
		{Rule: ruleShortnameLabel, Match: output.Match{Trigger: shortnameTrigger, Replace: vocabLabel, Label: annotation}},
	}, nil
}

// shortname concatenates the first letter of each whitespace-separated word
// of a label. Case is preserved.
func shortname(label string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(label) {
		r := []rune(word)
		sb.WriteRune(r[0])
	}
	return sb.String()
}
