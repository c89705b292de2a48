package trigger

import (
	"github.com/krerkkiat/espanso-ontology/extract"
	"github.com/krerkkiat/espanso-ontology/output"
)

// Rule names for the label strategy.
const (
	ruleLabel         = "label"
	ruleQualifiedName = "qualified-name"
)

// LabelStrategy emits exactly one record per term. When the term has an
// English label and label preference is enabled, the trigger is the
// hyphenated label and the replacement spells out the label with its
// qualified name; otherwise both trigger and replacement are the qualified
// name itself. There is no failure path for missing labels.
type LabelStrategy struct {
	opts Options
}

// Name returns the configuration name of the strategy.
func (s *LabelStrategy) Name() string { return StrategyNameLabel }

// Term synthesizes the single candidate for a term.
func (s *LabelStrategy) Term(term extract.OntologyTerm, kind extract.SubjectKind) ([]Candidate, error) {
	if term.Label != "" && s.opts.PreferLabel {
		return []Candidate{{
			Rule: ruleLabel,
			Match: output.Match{
				Trigger: s.opts.Marker + hyphenate(term.Label),
				Replace: term.Label + " (" + term.QualifiedName + ")",
				Label:   term.Label + " (" + kind.String() + ")",
			},
		}}, nil
	}

	return []Candidate{{
		Rule: ruleQualifiedName,
		Match: output.Match{
			Trigger: s.opts.Marker + term.QualifiedName,
			Replace: term.QualifiedName,
			Label:   term.QualifiedName + " (" + kind.String() + ")",
		},
	}}, nil
}
