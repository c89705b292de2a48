// Package extract selects ontology subjects by rdf:type and resolves each
// into a qualified term with an optional English label.
package extract

import (
	"fmt"
	"log/slog"

	"github.com/knakk/rdf"

	"github.com/krerkkiat/espanso-ontology/ontology"
	"github.com/krerkkiat/espanso-ontology/vocabulary"
)

// SubjectKind selects which ontology subjects an extraction pass covers.
type SubjectKind int

const (
	// KindClass extracts owl:Class subjects.
	KindClass SubjectKind = iota

	// KindObjectProperty extracts owl:ObjectProperty subjects.
	KindObjectProperty
)

// String returns the human-readable kind name used in annotation labels.
func (k SubjectKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindObjectProperty:
		return "Object Property"
	default:
		return "unknown"
	}
}

// TypeIRI returns the owl type IRI this kind filters on.
func (k SubjectKind) TypeIRI() string {
	switch k {
	case KindClass:
		return vocabulary.OWLClass
	case KindObjectProperty:
		return vocabulary.OWLObjectProperty
	default:
		return ""
	}
}

// OntologyTerm is one extracted subject: its prefix:local qualified name and
// its English label, empty when the subject has none.
type OntologyTerm struct {
	QualifiedName string
	Label         string
}

// ResolveEnglishLabel scans a subject's rdfs:label values and returns the
// lexical text of the first literal tagged "en". The first non-literal value
// ends the scan with no label, even if an English literal follows; callers
// that feed only rdfs:label objects are unaffected, but the behavior is kept
// as-is for parity with the tool this replaces.
func ResolveEnglishLabel(labels []rdf.Object) (string, bool) {
	for _, o := range labels {
		if o.Type() != rdf.TermLiteral {
			return "", false
		}
		lit, ok := o.(rdf.Literal)
		if !ok {
			return "", false
		}
		if lit.Lang() == "en" {
			return lit.String(), true
		}
	}
	return "", false
}

// Extractor produces OntologyTerm batches from a loaded store.
type Extractor struct {
	store    *ontology.Store
	prefixes *vocabulary.PrefixMap
	logger   *slog.Logger
}

// NewExtractor creates an Extractor over a loaded store. A nil logger falls
// back to slog.Default().
func NewExtractor(store *ontology.Store, prefixes *vocabulary.PrefixMap, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{store: store, prefixes: prefixes, logger: logger}
}

// Extract returns one OntologyTerm per named subject of rdf:type kind,
// sorted by subject IRI. Blank-node subjects are skipped. Any store failure
// aborts the pass with no partial result.
func (e *Extractor) Extract(kind SubjectKind) ([]OntologyTerm, error) {
	subjects, err := e.store.SubjectsWithPredicateObject(vocabulary.RDFType, kind.TypeIRI())
	if err != nil {
		return nil, fmt.Errorf("query %s subjects: %w", kind, err)
	}

	terms := make([]OntologyTerm, 0, len(subjects))
	skipped := 0
	for _, subj := range subjects {
		if subj.Type() != rdf.TermIRI {
			skipped++
			continue
		}

		labels, err := e.store.ObjectsFor(subj, vocabulary.RDFSLabel)
		if err != nil {
			return nil, fmt.Errorf("query labels for %s: %w", subj.String(), err)
		}

		term := OntologyTerm{QualifiedName: e.prefixes.Qualify(subj.String())}
		if label, ok := ResolveEnglishLabel(labels); ok {
			term.Label = label
		}
		terms = append(terms, term)
	}

	e.logger.Debug("extraction pass complete",
		"kind", kind.String(),
		"terms", len(terms),
		"blank_nodes_skipped", skipped)
	return terms, nil
}
