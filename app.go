package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/kwv/geogrid/grid"
)

// App encapsulates one pipeline run: scattered dataset in, block-reduced
// spline fit, Cartesian and geographic grids out.
type App struct {
	Config *grid.Config

	// OutputOverride, when set, replaces the configured grid CSV path.
	OutputOverride string
}

// NewApp creates an App for the given configuration.
func NewApp(config *grid.Config) *App {
	return &App{Config: config}
}

// prepare loads the dataset, builds the Mercator projection and block-reduces
// the projected coordinates. It is shared by Run and RunReduceOnly.
func (a *App) prepare() (data *grid.ScatteredData, latTS float64, reduced [3][]float64, err error) {
	data, err = grid.ReadScatteredCSV(a.Config.Input)
	if err != nil {
		return nil, 0, reduced, err
	}
	log.Printf("Loaded %d points from %s", len(data.Lon), a.Config.Input)

	latTS = grid.Mean(data.Lat)
	if a.Config.LatTrueScale != nil {
		latTS = *a.Config.LatTrueScale
	}
	projection := MercatorProjection(latTS)
	projEast, projNorth := projection(data.Lon, data.Lat)

	reducer := grid.NewBlockReducer(grid.Median, a.Config.BlockSpacing)
	redEast, redNorth, redValues, err := reducer.Filter(projEast, projNorth, data.Values)
	if err != nil {
		return nil, 0, reduced, fmt.Errorf("reducing data: %w", err)
	}
	log.Printf("Block reduction: %d points -> %d blocks (%.0fm blocks)", len(data.Lon), len(redEast), a.Config.BlockSpacing)

	reduced = [3][]float64{redEast, redNorth, redValues[0]}
	return data, latTS, reduced, nil
}

// RunReduceOnly block-reduces the dataset and writes the reduced points as
// GeoJSON (when configured), without fitting or gridding.
func (a *App) RunReduceOnly() error {
	_, latTS, reduced, err := a.prepare()
	if err != nil {
		return err
	}
	return a.writeReducedGeoJSON(latTS, reduced)
}

// Run executes the full pipeline: reduce, fit, grid in Cartesian and
// geographic frames, distance-mask, and write the configured artifacts.
func (a *App) Run() error {
	cfg := a.Config
	data, latTS, reduced, err := a.prepare()
	if err != nil {
		return err
	}
	projection := MercatorProjection(latTS)
	projEast, projNorth := projection(data.Lon, data.Lat)

	spline := grid.Spline{Damping: cfg.Damping}
	fitted, err := spline.Fit(reduced[0], reduced[1], reduced[2])
	if err != nil {
		return fmt.Errorf("fitting spline: %w", err)
	}

	// Cartesian grid over the projected data region.
	cartesian, err := fitted.Grid(fitted.DataRegion(), grid.Square(cfg.Spacing*grid.MetersPerDegree), grid.GridOptions{
		DataName: cfg.DataName,
	})
	if err != nil {
		return fmt.Errorf("building Cartesian grid: %w", err)
	}
	if cfg.MaxDistance > 0 {
		if _, err := grid.DistanceMask(projEast, projNorth, cfg.MaxDistance, cartesian, nil); err != nil {
			return fmt.Errorf("masking Cartesian grid: %w", err)
		}
	}
	rows, cols := cartesian.Shape()
	log.Printf("Cartesian grid: %dx%d nodes", rows, cols)

	gridCSV := cfg.Output.GridCSV
	if a.OutputOverride != "" {
		gridCSV = a.OutputOverride
	}
	if gridCSV != "" {
		if err := writeGridCSV(gridCSV, cartesian); err != nil {
			return err
		}
		log.Printf("Wrote Cartesian grid to %s", gridCSV)
	}

	// Geographic grid: nodes generated in degrees, evaluated through the
	// projection so the output is evenly spaced on the globe.
	geoRegion := grid.Region{}
	if cfg.Region != nil {
		geoRegion = *cfg.Region
	} else {
		geoRegion, err = grid.BoundingRegion(data.Lon, data.Lat)
		if err != nil {
			return err
		}
	}
	geographic, err := fitted.Grid(geoRegion, grid.Square(cfg.Spacing), grid.GridOptions{
		Projection: projection,
		DataName:   cfg.DataName,
	})
	if err != nil {
		return fmt.Errorf("building geographic grid: %w", err)
	}
	if cfg.MaxDistance > 0 {
		if _, err := grid.DistanceMask(data.Lon, data.Lat, cfg.MaxDistance, geographic, projection); err != nil {
			return fmt.Errorf("masking geographic grid: %w", err)
		}
	}
	rows, cols = geographic.Shape()
	log.Printf("Geographic grid: %dx%d nodes", rows, cols)

	if cfg.Output.GridGeoJSON != "" {
		fc, err := grid.GridToGeoJSON(geographic)
		if err != nil {
			return err
		}
		if err := writeJSON(cfg.Output.GridGeoJSON, fc); err != nil {
			return err
		}
		log.Printf("Wrote geographic grid to %s", cfg.Output.GridGeoJSON)
	}

	return a.writeReducedGeoJSON(latTS, reduced)
}

// writeReducedGeoJSON converts the reduced (projected) points back to
// geographic coordinates and writes them as GeoJSON, when configured.
func (a *App) writeReducedGeoJSON(latTS float64, reduced [3][]float64) error {
	if a.Config.Output.ReducedGeoJSON == "" {
		return nil
	}
	lon, lat := MercatorInverse(latTS)(reduced[0], reduced[1])
	fc, err := grid.PointsToGeoJSON(lon, lat, reduced[2], a.Config.DataName)
	if err != nil {
		return err
	}
	if err := writeJSON(a.Config.Output.ReducedGeoJSON, fc); err != nil {
		return err
	}
	log.Printf("Wrote %d reduced points to %s", len(lon), a.Config.Output.ReducedGeoJSON)
	return nil
}

// writeGridCSV writes a grid as (column, row, value...) CSV rows. Masked
// values are written as empty fields.
func writeGridCSV(path string, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	names := make([]string, 0, len(g.Data))
	for name := range g.Data {
		names = append(names, name)
	}
	sort.Strings(names)

	header := g.Dims[1] + "," + g.Dims[0]
	for _, name := range names {
		header += "," + name
	}
	if _, err := fmt.Fprintln(f, header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	rows, cols := g.Shape()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			line := strconv.FormatFloat(g.Coords[1][j], 'g', -1, 64) + "," + strconv.FormatFloat(g.Coords[0][i], 'g', -1, 64)
			for _, name := range names {
				v := g.Data[name][i][j]
				if math.IsNaN(v) {
					line += ","
				} else {
					line += "," + strconv.FormatFloat(v, 'g', -1, 64)
				}
			}
			if _, err := fmt.Fprintln(f, line); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
	}
	return nil
}

// writeJSON marshals v and writes it to path.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
