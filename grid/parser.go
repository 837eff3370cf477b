package grid

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ScatteredData is a parsed scattered dataset: parallel longitude, latitude
// and value sequences of equal, positive length.
type ScatteredData struct {
	Lon, Lat, Values []float64
}

// ReadScatteredCSV reads a scattered dataset from a CSV file with at least
// three columns: longitude, latitude, value. A header row is detected by the
// first field not parsing as a number and skipped.
func ReadScatteredCSV(path string) (*ScatteredData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	data, err := ParseScatteredCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return data, nil
}

// ParseScatteredCSV parses scattered (lon, lat, value) rows from a reader.
func ParseScatteredCSV(r io.Reader) (*ScatteredData, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	data := &ScatteredData{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line++
		if len(record) < 3 {
			return nil, fmt.Errorf("line %d: need at least 3 columns (lon, lat, value), got %d", line, len(record))
		}

		lon, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			if line == 1 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("line %d: parsing longitude %q: %w", line, record[0], err)
		}
		lat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing latitude %q: %w", line, record[1], err)
		}
		value, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing value %q: %w", line, record[2], err)
		}

		data.Lon = append(data.Lon, lon)
		data.Lat = append(data.Lat, lat)
		data.Values = append(data.Values, value)
	}

	if len(data.Lon) == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows", ErrEmptyInput)
	}
	return data, nil
}
