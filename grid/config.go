package grid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputConfig lists the artifact paths a pipeline run writes. Empty paths
// disable the corresponding artifact.
type OutputConfig struct {
	GridCSV        string `yaml:"gridCsv,omitempty" json:"gridCsv,omitempty"`
	GridGeoJSON    string `yaml:"gridGeojson,omitempty" json:"gridGeojson,omitempty"`
	ReducedGeoJSON string `yaml:"reducedGeojson,omitempty" json:"reducedGeojson,omitempty"`
}

// Config drives the demo gridding pipeline: where the scattered dataset
// lives, how aggressively to decimate it, how the spline is regularized, and
// what grids to emit.
type Config struct {
	// Input is the path to a CSV of scattered (longitude, latitude, value)
	// rows.
	Input string `yaml:"input" json:"input"`

	// DataName labels the gridded data arrays, e.g. "bathymetry".
	DataName string `yaml:"dataName,omitempty" json:"dataName,omitempty"`

	// Spacing is the output grid spacing in degrees. Cartesian artifacts
	// use the same spacing converted with MetersPerDegree.
	Spacing float64 `yaml:"spacing" json:"spacing"`

	// BlockSpacing is the block-reduction size in projected meters. Zero
	// defaults to Spacing converted to meters.
	BlockSpacing float64 `yaml:"blockSpacing,omitempty" json:"blockSpacing,omitempty"`

	// Damping is the spline ridge-regularization term.
	Damping float64 `yaml:"damping,omitempty" json:"damping,omitempty"`

	// MaxDistance is the distance-mask threshold in projected meters. Zero
	// disables masking.
	MaxDistance float64 `yaml:"maxDistance,omitempty" json:"maxDistance,omitempty"`

	// LatTrueScale optionally pins the Mercator latitude of true scale.
	// When nil, the mean latitude of the dataset is used.
	LatTrueScale *float64 `yaml:"latTrueScale,omitempty" json:"latTrueScale,omitempty"`

	// Region optionally overrides the geographic gridding region. When nil
	// the bounding region of the data is used.
	Region *Region `yaml:"region,omitempty" json:"region,omitempty"`

	Output OutputConfig `yaml:"output" json:"output"`
}

// MetersPerDegree is the rule-of-thumb conversion used to express degree
// spacings in projected meters (1 degree is roughly 111 km).
const MetersPerDegree = 111e3

// LoadConfig loads and validates a pipeline configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if config.Input == "" {
		return nil, fmt.Errorf("input is required")
	}
	if config.Spacing <= 0 {
		return nil, fmt.Errorf("spacing must be positive, got %v", config.Spacing)
	}
	if config.Damping < 0 {
		return nil, fmt.Errorf("damping must not be negative, got %v", config.Damping)
	}
	if config.MaxDistance < 0 {
		return nil, fmt.Errorf("maxDistance must not be negative, got %v", config.MaxDistance)
	}
	if config.Region != nil {
		if err := config.Region.Validate(); err != nil {
			return nil, fmt.Errorf("region: %w", err)
		}
	}

	// Defaults.
	if config.DataName == "" {
		config.DataName = "values"
	}
	if config.BlockSpacing == 0 {
		config.BlockSpacing = config.Spacing * MetersPerDegree
	}
	if config.BlockSpacing < 0 {
		return nil, fmt.Errorf("blockSpacing must not be negative, got %v", config.BlockSpacing)
	}

	return &config, nil
}

// SaveConfig writes the configuration back to a YAML file.
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
