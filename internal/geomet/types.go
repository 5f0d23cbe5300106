package geomet

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Feature is one GeoJSON record: id, geometry, properties.
type Feature struct {
	Type       string         `json:"type"`
	ID         FeatureID      `json:"id,omitempty"`
	Geometry   *Geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// PropertyNames returns the feature's property names in sorted order, the
// deterministic column order used by tables, flat records, and CSV export.
func (f Feature) PropertyNames() []string {
	names := make([]string, 0, len(f.Properties))
	for name := range f.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FeatureID accepts both string and numeric ids; some GeoMet collections
// use integers.
type FeatureID string

func (id *FeatureID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FeatureID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FeatureID(n.String())
	return nil
}

// Geometry holds a GeoJSON geometry. Coordinates stay raw so that non-Point
// shapes round-trip through export untouched.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// PointCoords returns the longitude and latitude of a Point geometry.
// ok is false for nil, non-Point, or malformed geometries.
func (g *Geometry) PointCoords() (lon, lat float64, ok bool) {
	if g == nil || g.Type != "Point" {
		return 0, 0, false
	}
	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil || len(coords) < 2 {
		return 0, 0, false
	}
	return coords[0], coords[1], true
}

// NewPoint builds a Point geometry from longitude and latitude.
func NewPoint(lon, lat float64) *Geometry {
	raw, _ := json.Marshal([]float64{lon, lat})
	return &Geometry{Type: "Point", Coordinates: raw}
}

// Link is one entry of an OGC API links array.
type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// FeatureCollection is the GeoJSON FeatureCollection envelope returned by
// the items endpoint (and re-emitted by the GeoJSON exporter).
type FeatureCollection struct {
	Type           string    `json:"type"`
	Features       []Feature `json:"features"`
	Links          []Link    `json:"links,omitempty"`
	NumberMatched  *int      `json:"numberMatched,omitempty"`
	NumberReturned *int      `json:"numberReturned,omitempty"`
}

// Page is one server response folded into driver-friendly form.
type Page struct {
	Features       []Feature
	NumberMatched  *int // absent when the server does not report it
	NumberReturned int
	HasMore        bool // derived from a rel="next" link
}

// FetchResult is the accumulated output of one pagination run.
type FetchResult struct {
	Features []Feature
	// Truncated is true when accumulation stopped at the item cap while the
	// server still reported more matches, false on natural exhaustion.
	Truncated bool
	// Requests is the number of HTTP requests issued.
	Requests int
}

// Collection is a dataset's metadata from /collections.
type Collection struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Extent      Extent   `json:"extent,omitempty"`
	Links       []Link   `json:"links,omitempty"`
}

// Extent describes a collection's spatial and temporal coverage.
type Extent struct {
	Spatial  SpatialExtent  `json:"spatial,omitempty"`
	Temporal TemporalExtent `json:"temporal,omitempty"`
}

type SpatialExtent struct {
	BBox [][]float64 `json:"bbox,omitempty"`
	CRS  string      `json:"crs,omitempty"`
}

// TemporalExtent intervals use nil for open-ended bounds.
type TemporalExtent struct {
	Interval [][]*string `json:"interval,omitempty"`
}

// Queryables lists the properties a collection declares filterable/sortable.
type Queryables struct {
	Title      string               `json:"title,omitempty"`
	Properties map[string]Queryable `json:"properties"`
}

type Queryable struct {
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// FormatValue renders a property value for tables and CSV cells. Numbers
// are formatted without trailing zeros, nil becomes the empty string.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
