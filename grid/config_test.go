package grid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
input: bathymetry.csv
dataName: bathymetry
spacing: 0.1667
blockSpacing: 18500
damping: 0.01
maxDistance: 30000
output:
  gridCsv: grid.csv
  gridGeojson: grid.geojson
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bathymetry.csv", config.Input)
	assert.Equal(t, "bathymetry", config.DataName)
	assert.Equal(t, 0.1667, config.Spacing)
	assert.Equal(t, 18500.0, config.BlockSpacing)
	assert.Equal(t, 0.01, config.Damping)
	assert.Equal(t, 30000.0, config.MaxDistance)
	assert.Equal(t, "grid.csv", config.Output.GridCSV)
	assert.Equal(t, "grid.geojson", config.Output.GridGeoJSON)
	assert.Nil(t, config.Region)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, `
input: data.csv
spacing: 0.5
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "values", config.DataName)
	assert.Equal(t, 0.5*MetersPerDegree, config.BlockSpacing)
	assert.Zero(t, config.Damping)
	assert.Zero(t, config.MaxDistance)
}

func TestLoadConfigRegion(t *testing.T) {
	path := writeTempConfig(t, `
input: data.csv
spacing: 0.5
region:
  west: -116
  east: -114
  south: 27
  north: 29
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, config.Region)
	assert.Equal(t, Region{West: -116, East: -114, South: 27, North: 29}, *config.Region)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing input", "spacing: 0.5\n"},
		{"missing spacing", "input: data.csv\n"},
		{"negative spacing", "input: data.csv\nspacing: -1\n"},
		{"negative damping", "input: data.csv\nspacing: 0.5\ndamping: -0.1\n"},
		{"negative maxDistance", "input: data.csv\nspacing: 0.5\nmaxDistance: -1\n"},
		{"inverted region", "input: data.csv\nspacing: 0.5\nregion:\n  west: 1\n  east: 0\n  south: 0\n  north: 1\n"},
		{"bad yaml", "input: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.content)
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "not found")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	original := &Config{
		Input:        "data.csv",
		DataName:     "depth",
		Spacing:      0.25,
		BlockSpacing: 1000,
		Damping:      0.001,
	}
	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, SaveConfig(path, original))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original.Input, loaded.Input)
	assert.Equal(t, original.DataName, loaded.DataName)
	assert.Equal(t, original.Spacing, loaded.Spacing)
	assert.Equal(t, original.BlockSpacing, loaded.BlockSpacing)
	assert.Equal(t, original.Damping, loaded.Damping)
}
