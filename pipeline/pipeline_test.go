package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/krerkkiat/espanso-ontology/config"
	"github.com/krerkkiat/espanso-ontology/output"
	"github.com/krerkkiat/espanso-ontology/pipeline"
	"github.com/krerkkiat/espanso-ontology/trigger"
)

func fixturePath() string {
	return filepath.Join("..", "ontology", "testdata", "bfo-fragment.owl")
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Output.Path = filepath.Join(t.TempDir(), "packages.yml")
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunLabelStrategy(t *testing.T) {
	cfg := testConfig(t)
	p, err := pipeline.New(cfg, nil)
	require.NoError(t, err)

	require.NoError(t, p.Run(fixturePath()))

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)

	var set output.MatchSet
	require.NoError(t, yaml.Unmarshal(data, &set))

	assert.Equal(t, []output.Match{
		{Trigger: ":bfo:BFO_0000004", Replace: "bfo:BFO_0000004", Label: "bfo:BFO_0000004 (Class)"},
		{Trigger: ":process", Replace: "process (bfo:BFO_0000015)", Label: "process (Class)"},
		{Trigger: ":object-aggregate", Replace: "object aggregate (bfo:BFO_0000030)", Label: "object aggregate (Class)"},
		{Trigger: ":has-participant", Replace: "has participant (bfo:BFO_0000057)", Label: "has participant (Object Property)"},
		{Trigger: ":occurs-in", Replace: "occurs in (bfo:BFO_0000066)", Label: "occurs in (Object Property)"},
	}, set.Matches, "classes come first, then object properties, each in IRI order")
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := testConfig(t)
	p, err := pipeline.New(cfg, nil)
	require.NoError(t, err)

	require.NoError(t, p.Run(fixturePath()))
	first, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)

	require.NoError(t, p.Run(fixturePath()))
	second, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "two runs over the same input must be byte-identical")
}

func TestRunNumericStrategyFailsFast(t *testing.T) {
	cfg := testConfig(t)
	cfg.Synthesis.Strategy = trigger.StrategyNameNumeric
	p, err := pipeline.New(cfg, nil)
	require.NoError(t, err)

	// The fixture contains a class without an English label, which the
	// numeric strategy treats as fatal.
	err = p.Run(fixturePath())
	require.ErrorIs(t, err, trigger.ErrMissingLabel)

	_, statErr := os.Stat(cfg.Output.Path)
	assert.True(t, os.IsNotExist(statErr), "a failed run must not write a partial report")
}

func TestRunNumericStrategy(t *testing.T) {
	// Restrict the input to the subjects that satisfy the numeric
	// strategy's requirements.
	dir := t.TempDir()
	content := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Class rdf:about="http://purl.obolibrary.org/obo/BFO_0000030">
    <rdfs:label xml:lang="en">object aggregate</rdfs:label>
  </owl:Class>
</rdf:RDF>
`
	input := filepath.Join(dir, "bfo.owl")
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))

	cfg := testConfig(t)
	cfg.Synthesis.Strategy = trigger.StrategyNameNumeric
	p, err := pipeline.New(cfg, nil)
	require.NoError(t, err)

	require.NoError(t, p.Run(input))

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)

	var set output.MatchSet
	require.NoError(t, yaml.Unmarshal(data, &set))
	require.Len(t, set.Matches, 4)

	triggers := map[string]int{}
	for _, m := range set.Matches {
		triggers[m.Trigger]++
		assert.Equal(t, "bfo:object-aggregate (Class; bfo:BFO_0000030)", m.Label)
	}
	assert.Equal(t, 2, triggers[":bfo-30"])
	assert.Equal(t, 2, triggers[":bfo-oa"])
}

func TestRunMissingInput(t *testing.T) {
	cfg := testConfig(t)
	p, err := pipeline.New(cfg, nil)
	require.NoError(t, err)

	err = p.Run(filepath.Join(t.TempDir(), "missing.owl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load graph")
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Synthesis.Strategy = "fancy"
	_, err := pipeline.New(cfg, nil)
	assert.ErrorIs(t, err, trigger.ErrUnknownStrategy)

	cfg = testConfig(t)
	cfg.Ontology.Prefixes = map[string]string{"ex": "relative/path"}
	_, err = pipeline.New(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefix table")
}
