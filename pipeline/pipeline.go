// Package pipeline orchestrates the full run: load the ontology graph,
// extract classes and object properties, synthesize match records, and write
// the report. Any stage failure aborts the run before the report file is
// touched.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/krerkkiat/espanso-ontology/config"
	"github.com/krerkkiat/espanso-ontology/extract"
	"github.com/krerkkiat/espanso-ontology/ontology"
	"github.com/krerkkiat/espanso-ontology/output"
	"github.com/krerkkiat/espanso-ontology/trigger"
	"github.com/krerkkiat/espanso-ontology/vocabulary"
)

// kinds fixes the batch order: classes first, then object properties.
var kinds = []extract.SubjectKind{extract.KindClass, extract.KindObjectProperty}

// Pipeline runs the extraction-and-synthesis pipeline for one input pattern.
type Pipeline struct {
	cfg      *config.Config
	prefixes *vocabulary.PrefixMap
	strategy trigger.Strategy
	mode     ontology.ReaderMode
	logger   *slog.Logger
}

// New builds a Pipeline from a validated configuration. The prefix table and
// strategy are constructed up front so configuration problems surface before
// any graph is loaded.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	prefixes, err := vocabulary.NewPrefixMap(cfg.Ontology.Prefixes)
	if err != nil {
		return nil, fmt.Errorf("build prefix table: %w", err)
	}

	strategy, err := trigger.New(cfg.Synthesis.Strategy, trigger.Options{
		Marker:      cfg.Synthesis.Marker,
		VocabPrefix: cfg.Synthesis.VocabPrefix,
		PreferLabel: cfg.Synthesis.PreferLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("select strategy: %w", err)
	}

	mode, err := ontology.ParseReaderMode(cfg.Ontology.ReaderMode)
	if err != nil {
		return nil, fmt.Errorf("select reader mode: %w", err)
	}

	return &Pipeline{
		cfg:      cfg,
		prefixes: prefixes,
		strategy: strategy,
		mode:     mode,
		logger:   logger,
	}, nil
}

// Run executes one full pipeline pass over the files matched by pattern and
// writes the report to the configured output path.
func (p *Pipeline) Run(pattern string) error {
	runLog := p.logger.With("run_id", uuid.New().String())

	store, paths, err := ontology.LoadGlob(pattern, p.mode, runLog)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}
	runLog.Info("graph loaded", "files", len(paths), "triples", store.Len())

	for _, imp := range store.Imports() {
		runLog.Info("ontology import", "iri", imp)
	}

	extractor := extract.NewExtractor(store, p.prefixes, runLog)
	synthesizer := trigger.NewSynthesizer(p.strategy, runLog)

	var set output.MatchSet
	for _, kind := range kinds {
		terms, err := extractor.Extract(kind)
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}

		matches, err := synthesizer.Synthesize(terms, kind)
		if err != nil {
			return fmt.Errorf("synthesize: %w", err)
		}

		runLog.Info("batch synthesized",
			"kind", kind.String(),
			"terms", len(terms),
			"matches", len(matches))
		set.Append(matches...)
	}

	if err := output.WriteFile(p.cfg.Output.Path, set); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	runLog.Info("report written", "path", p.cfg.Output.Path, "matches", set.Len())
	return nil
}
