// Package export writes fetched features to CSV or GeoJSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/geomet-tools/geomet-catalog/internal/geomet"
)

// Format selects the export representation.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatGeoJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q: must be csv or geojson", s)
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	return string(f)
}

// DefaultPath builds the auto-generated output filename:
// <collection>_<timestamp>.<ext>.
func DefaultPath(collectionID string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", collectionID, now.Format("20060102_150405"), format.Extension())
}

// WriteCSV flattens features into rows with columns id, longitude, latitude,
// then the sorted union of all property names across the input. Missing
// properties and non-Point coordinates render as empty cells.
func WriteCSV(w io.Writer, features []geomet.Feature) error {
	columns := []string{"id", "longitude", "latitude"}
	columns = append(columns, propertyUnion(features)...)

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(columns))
	for _, f := range features {
		rec := geomet.Flatten(f)
		for i, col := range columns {
			row[i] = geomet.FormatValue(rec.Value(col))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteGeoJSON re-wraps the features as a FeatureCollection, two-space
// indented, geometries passed through untouched.
func WriteGeoJSON(w io.Writer, features []geomet.Feature) error {
	fc := geomet.FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(fc)
}

// WriteFile writes features to path in the given format, creating the file.
func WriteFile(path string, format Format, features []geomet.Feature) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	switch format {
	case FormatGeoJSON:
		err = WriteGeoJSON(fh, features)
	default:
		err = WriteCSV(fh, features)
	}
	if err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

func propertyUnion(features []geomet.Feature) []string {
	seen := map[string]bool{}
	for _, f := range features {
		for name := range f.Properties {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
