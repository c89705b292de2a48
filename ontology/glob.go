package ontology

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// LoadGlob loads every file matched by pattern into one Store. The pattern
// supports doublestar globs (** included); a plain path without glob
// metacharacters is loaded directly. Matched files are loaded in sorted path
// order so the merged store is reproducible.
func LoadGlob(pattern string, mode ReaderMode, logger *slog.Logger) (*Store, []string, error) {
	paths, err := ResolveInputs(pattern)
	if err != nil {
		return nil, nil, err
	}
	store, err := load(paths, mode, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, paths, nil
}

// ResolveInputs expands pattern into the sorted list of ontology file paths
// it matches. A pattern without glob metacharacters is returned as-is, so a
// missing literal path surfaces as an open error rather than "no match".
func ResolveInputs(pattern string) ([]string, error) {
	if !hasGlobMeta(pattern) {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoInput, pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

func hasGlobMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
