package processor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/fieldmap/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshal(t *testing.T) {
	fields := testFields()

	data, err := Marshal(fields, FormatJSON)
	require.NoError(t, err)
	var decoded []catalog.Field
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fields, decoded)

	data, err = Marshal(fields, FormatYAML)
	require.NoError(t, err)
	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML, 4)
	assert.Equal(t, "North", fromYAML[0]["name"])

	data, err = Marshal(fields, FormatGeoJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)

	_, err = Marshal(fields, "csv")
	assert.Error(t, err)

	data, err = Marshal(nil, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestSaveExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "fields.geojson")

	require.NoError(t, SaveExport(testFields(), FormatGeoJSON, path, false))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(first), "North")

	require.NoError(t, SaveExport(testFields()[:1], FormatJSON, path, false))
	kept, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, kept, "existing file is kept without force")

	require.NoError(t, SaveExport(testFields()[:1], FormatJSON, path, true))
	replaced, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, replaced)
}
