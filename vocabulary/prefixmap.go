package vocabulary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Prefix table validation errors.
var (
	// ErrPrefixTable indicates an invalid prefix table entry.
	ErrPrefixTable = errors.New("invalid prefix table")

	// ErrMalformedIRI indicates a namespace value that is not an absolute IRI.
	ErrMalformedIRI = errors.New("malformed IRI")
)

// PrefixMap qualifies full IRIs into short prefix:local names using a fixed
// namespace table. Construction validates the table; qualification itself
// never fails — an IRI outside every registered namespace is returned as-is.
type PrefixMap struct {
	// entries are sorted by descending namespace length so the longest
	// matching namespace wins.
	entries []prefixEntry
}

type prefixEntry struct {
	prefix    string
	namespace string
}

// DefaultPrefixes returns the built-in namespace prefix table: OWL plus the
// obo vocabulary prefix and the industrial-ontologies core prefix.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"owl":  OWLNamespace,
		"bfo":  "http://purl.obolibrary.org/obo/",
		"core": "https://spec.industrialontologies.org/ontology/core/Core/",
	}
}

// NewPrefixMap builds a PrefixMap from a prefix → namespace table.
func NewPrefixMap(table map[string]string) (*PrefixMap, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrPrefixTable)
	}

	entries := make([]prefixEntry, 0, len(table))
	for prefix, ns := range table {
		if prefix == "" {
			return nil, fmt.Errorf("%w: empty prefix for namespace %q", ErrPrefixTable, ns)
		}
		if strings.ContainsAny(prefix, ": \t\n") {
			return nil, fmt.Errorf("%w: prefix %q contains reserved characters", ErrPrefixTable, prefix)
		}
		if !isAbsoluteIRI(ns) {
			return nil, fmt.Errorf("%w: namespace %q for prefix %q", ErrMalformedIRI, ns, prefix)
		}
		entries = append(entries, prefixEntry{prefix: prefix, namespace: ns})
	}

	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].namespace) != len(entries[j].namespace) {
			return len(entries[i].namespace) > len(entries[j].namespace)
		}
		return entries[i].namespace < entries[j].namespace
	})

	return &PrefixMap{entries: entries}, nil
}

// Qualify renders iri as prefix:local using the longest matching namespace.
// An IRI that falls outside every registered namespace is returned unchanged.
func (pm *PrefixMap) Qualify(iri string) string {
	for _, e := range pm.entries {
		if rest, ok := strings.CutPrefix(iri, e.namespace); ok && rest != "" {
			return e.prefix + ":" + rest
		}
	}
	return iri
}

// LocalName returns the part after the first colon of a qualified name, or
// the whole name when it carries no prefix.
func LocalName(qualified string) string {
	if _, local, ok := strings.Cut(qualified, ":"); ok {
		return local
	}
	return qualified
}

// isAbsoluteIRI checks for a scheme followed by a non-empty remainder. Full
// IRI validation is left to the RDF layer; the table only needs to reject
// values that cannot possibly prefix an absolute IRI.
func isAbsoluteIRI(s string) bool {
	scheme, rest, ok := strings.Cut(s, ":")
	if !ok || scheme == "" || rest == "" {
		return false
	}
	for _, r := range scheme {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}
