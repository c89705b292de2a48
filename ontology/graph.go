// Package ontology loads RDF/XML documents into an in-memory, read-only
// triple store and exposes the two lookups the extraction pipeline needs:
// subjects by (predicate, object) and objects by (subject, predicate).
package ontology

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/knakk/rdf"

	"github.com/krerkkiat/espanso-ontology/vocabulary"
)

// Store errors.
var (
	// ErrNoInput indicates that a glob pattern matched no files.
	ErrNoInput = errors.New("no input files matched")

	// ErrStoreQuery indicates a malformed lookup term; the store itself is
	// immutable after load and cannot fail once built.
	ErrStoreQuery = errors.New("store query failed")
)

// ReaderMode controls how much non-conformance the RDF/XML reader tolerates.
type ReaderMode int

const (
	// ModeLax keeps every triple decoded before the first malformed
	// construct and logs a warning instead of failing the load.
	ModeLax ReaderMode = iota

	// ModeStrict fails the load on the first malformed construct.
	ModeStrict
)

// String returns the mode name used in configuration files.
func (m ReaderMode) String() string {
	switch m {
	case ModeLax:
		return "lax"
	case ModeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseReaderMode maps a configuration value to a ReaderMode.
func ParseReaderMode(s string) (ReaderMode, error) {
	switch s {
	case "", "lax":
		return ModeLax, nil
	case "strict":
		return ModeStrict, nil
	default:
		return ModeLax, fmt.Errorf("unknown reader mode %q", s)
	}
}

// Store is an in-memory triple store. It is populated once at load time and
// read-only thereafter; lookups are safe for sequential reuse across
// extraction passes.
type Store struct {
	triples []rdf.Triple

	// bySubjPred indexes object terms by subject and predicate key.
	bySubjPred map[string][]rdf.Object

	// byPredObj indexes subject terms by predicate and object key.
	byPredObj map[string][]rdf.Subject
}

// Load reads one RDF/XML document into a new Store.
func Load(path string, mode ReaderMode, logger *slog.Logger) (*Store, error) {
	return load([]string{path}, mode, logger)
}

func load(paths []string, mode ReaderMode, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		bySubjPred: make(map[string][]rdf.Object),
		byPredObj:  make(map[string][]rdf.Subject),
	}
	seen := make(map[string]struct{})

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open ontology file: %w", err)
		}

		dec := rdf.NewTripleDecoder(f, rdf.RDFXML)
		count := 0
		for {
			triple, err := dec.Decode()
			if err == io.EOF {
				break
			}
			if err != nil {
				if mode == ModeStrict {
					_ = f.Close()
					return nil, fmt.Errorf("decode %s: %w", path, err)
				}
				// Lax mode keeps what decoded cleanly. The decoder
				// cannot resynchronize inside a malformed XML tree,
				// so the remainder of this file is skipped.
				logger.Warn("skipping malformed ontology tail",
					"path", path,
					"triples_kept", count,
					"error", err)
				break
			}
			key := triple.Serialize(rdf.NTriples)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			s.add(triple)
			count++
		}

		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("close ontology file: %w", err)
		}
		logger.Debug("ontology file loaded", "path", path, "triples", count)
	}

	return s, nil
}

func (s *Store) add(t rdf.Triple) {
	s.triples = append(s.triples, t)
	spKey := t.Subj.Serialize(rdf.NTriples) + " " + t.Pred.Serialize(rdf.NTriples)
	s.bySubjPred[spKey] = append(s.bySubjPred[spKey], t.Obj)
	poKey := t.Pred.Serialize(rdf.NTriples) + " " + t.Obj.Serialize(rdf.NTriples)
	s.byPredObj[poKey] = append(s.byPredObj[poKey], t.Subj)
}

// Len returns the number of distinct triples in the store.
func (s *Store) Len() int {
	return len(s.triples)
}

// SubjectsWithPredicateObject returns every subject of a (subject, pred, obj)
// triple, where pred and obj are full IRIs. Subjects are returned in
// lexicographic IRI order, blank nodes first, so that downstream output is
// reproducible across runs.
func (s *Store) SubjectsWithPredicateObject(pred, obj string) ([]rdf.Subject, error) {
	predIRI, err := rdf.NewIRI(pred)
	if err != nil {
		return nil, fmt.Errorf("%w: predicate %q: %v", ErrStoreQuery, pred, err)
	}
	objIRI, err := rdf.NewIRI(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: object %q: %v", ErrStoreQuery, obj, err)
	}

	key := predIRI.Serialize(rdf.NTriples) + " " + objIRI.Serialize(rdf.NTriples)
	subjects := append([]rdf.Subject(nil), s.byPredObj[key]...)
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Type() != subjects[j].Type() {
			return subjects[i].Type() < subjects[j].Type()
		}
		return subjects[i].String() < subjects[j].String()
	})
	return subjects, nil
}

// ObjectsFor returns every object of a (subj, pred, object) triple, where
// pred is a full IRI. Order follows document order within the store.
func (s *Store) ObjectsFor(subj rdf.Subject, pred string) ([]rdf.Object, error) {
	predIRI, err := rdf.NewIRI(pred)
	if err != nil {
		return nil, fmt.Errorf("%w: predicate %q: %v", ErrStoreQuery, pred, err)
	}

	key := subj.Serialize(rdf.NTriples) + " " + predIRI.Serialize(rdf.NTriples)
	return append([]rdf.Object(nil), s.bySubjPred[key]...), nil
}

// Imports returns the object IRIs of every owl:imports triple, sorted.
func (s *Store) Imports() []string {
	var imports []string
	for _, t := range s.triples {
		if t.Pred.String() != vocabulary.OWLImports {
			continue
		}
		if t.Obj.Type() != rdf.TermIRI {
			continue
		}
		imports = append(imports, t.Obj.String())
	}
	sort.Strings(imports)
	return imports
}
