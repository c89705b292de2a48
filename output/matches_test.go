package output_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/krerkkiat/espanso-ontology/output"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), output.DefaultPath)

	var set output.MatchSet
	set.Append(
		output.Match{Trigger: ":object-aggregate", Replace: "object aggregate (bfo:BFO_0000030)", Label: "object aggregate (Class)"},
		output.Match{Trigger: ":bfo:BFO_0000004", Replace: "bfo:BFO_0000004"},
	)
	require.NoError(t, output.WriteFile(path, set))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "matches:"), "report must be a single matches mapping")
	assert.Equal(t, 1, strings.Count(text, "label:"), "label must be omitted for records without one")

	var got output.MatchSet
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, set, got)
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), output.DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0644))

	var set output.MatchSet
	set.Append(output.Match{Trigger: ":x", Replace: "y"})
	require.NoError(t, output.WriteFile(path, set))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale content")
}
