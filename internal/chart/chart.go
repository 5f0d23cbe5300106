// Package chart renders fetched features as PNG charts: timeseries, bar,
// scatter, and a simple longitude/latitude station map.
package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/geomet-tools/geomet-catalog/internal/geomet"
)

// Kind selects the visualization type.
type Kind string

const (
	KindTimeseries Kind = "timeseries"
	KindBar        Kind = "bar"
	KindScatter    Kind = "scatter"
	KindMap        Kind = "map"
)

// ParseKind validates a chart type flag value.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTimeseries, KindBar, KindScatter, KindMap:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown chart type %q: must be timeseries, bar, scatter, or map", s)
	}
}

// Options configures one rendering.
type Options struct {
	Collection string
	XField     string
	YField     string
	GroupBy    string
	Title      string
}

// dateFields are the date property names seen across GeoMet collections,
// tried in order when auto-detecting the timeseries X axis.
var dateFields = []string{
	"LOCAL_DATE", "LOCAL_DATETIME", "DATE", "DATETIME",
	"OBSERVATION_DATE_LOCAL", "OBSERVATION_DATETIME_LOCAL",
	"date", "datetime", "time", "timestamp",
	"TIMESTAMP", "TIME", "PERIOD_BEGIN", "PERIOD_END",
}

var dateLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

// Render draws the requested chart kind and returns PNG bytes.
func Render(kind Kind, features []geomet.Feature, opts Options) ([]byte, error) {
	switch kind {
	case KindTimeseries:
		return Timeseries(features, opts)
	case KindBar:
		return Bar(features, opts)
	case KindScatter:
		return Scatter(features, opts)
	case KindMap:
		return Map(features, opts)
	default:
		return nil, fmt.Errorf("unknown chart type %q", kind)
	}
}

// Timeseries plots YField over time. The X field defaults to the first
// recognized date property; values with unparseable dates or non-numeric Y
// are skipped. GroupBy splits the data into one line per group value.
func Timeseries(features []geomet.Feature, opts Options) ([]byte, error) {
	if opts.YField == "" {
		return nil, fmt.Errorf("timeseries requires a y-field")
	}
	xField := opts.XField
	if xField == "" {
		xField = DetectDateField(features)
		if xField == "" {
			return nil, fmt.Errorf("could not auto-detect a date field: specify x-field")
		}
	}

	type point struct {
		t time.Time
		v float64
	}
	groups := map[string][]point{}
	for _, f := range features {
		d, ok := parseDate(f.Properties[xField])
		if !ok {
			continue
		}
		v, ok := toFloat(f.Properties[opts.YField])
		if !ok {
			continue
		}
		key := ""
		if opts.GroupBy != "" {
			key = groupKey(f.Properties[opts.GroupBy])
		}
		groups[key] = append(groups[key], point{t: d, v: v})
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no valid date/value pairs for fields %s/%s", xField, opts.YField)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([]chart.Series, 0, len(names))
	for _, name := range names {
		pts := groups[name]
		sort.Slice(pts, func(i, j int) bool { return pts[i].t.Before(pts[j].t) })
		xs := make([]time.Time, len(pts))
		ys := make([]float64, len(pts))
		for i, p := range pts {
			xs[i] = p.t
			ys[i] = p.v
		}
		series = append(series, chart.TimeSeries{Name: name, XValues: xs, YValues: ys})
	}

	graph := chart.Chart{
		Title:  title(opts, fmt.Sprintf("%s: %s over time", opts.Collection, opts.YField)),
		Width:  1200,
		Height: 600,
		XAxis:  chart.XAxis{Name: xField, ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:  chart.YAxis{Name: opts.YField},
		Series: series,
	}
	if opts.GroupBy != "" {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return renderPNG(&graph)
}

// Bar averages YField per distinct XField value and draws one bar per value,
// labels sorted.
func Bar(features []geomet.Feature, opts Options) ([]byte, error) {
	if opts.XField == "" || opts.YField == "" {
		return nil, fmt.Errorf("bar requires both x-field and y-field")
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, f := range features {
		label := geomet.FormatValue(f.Properties[opts.XField])
		v, ok := toFloat(f.Properties[opts.YField])
		if label == "" || !ok {
			continue
		}
		sums[label] += v
		counts[label]++
	}
	if len(sums) == 0 {
		return nil, fmt.Errorf("no valid data for fields %s/%s", opts.XField, opts.YField)
	}

	labels := make([]string, 0, len(sums))
	for label := range sums {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	bars := make([]chart.Value, len(labels))
	for i, label := range labels {
		bars[i] = chart.Value{Label: label, Value: sums[label] / float64(counts[label])}
	}

	graph := chart.BarChart{
		Title:    title(opts, fmt.Sprintf("%s: %s by %s", opts.Collection, opts.YField, opts.XField)),
		Width:    1200,
		Height:   600,
		BarWidth: barWidth(len(bars)),
		Bars:     bars,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Scatter plots numeric YField against numeric XField, optionally split
// into one dot series per GroupBy value.
func Scatter(features []geomet.Feature, opts Options) ([]byte, error) {
	if opts.XField == "" || opts.YField == "" {
		return nil, fmt.Errorf("scatter requires both x-field and y-field")
	}

	type pair struct{ x, y float64 }
	groups := map[string][]pair{}
	for _, f := range features {
		x, okX := toFloat(f.Properties[opts.XField])
		y, okY := toFloat(f.Properties[opts.YField])
		if !okX || !okY {
			continue
		}
		key := ""
		if opts.GroupBy != "" {
			key = groupKey(f.Properties[opts.GroupBy])
		}
		groups[key] = append(groups[key], pair{x: x, y: y})
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no valid data for fields %s/%s", opts.XField, opts.YField)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([]chart.Series, 0, len(names))
	for _, name := range names {
		pairs := groups[name]
		xs := make([]float64, len(pairs))
		ys := make([]float64, len(pairs))
		for i, p := range pairs {
			xs[i] = p.x
			ys[i] = p.y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   dotStyle(),
		})
	}

	graph := chart.Chart{
		Title:  title(opts, fmt.Sprintf("%s: %s vs %s", opts.Collection, opts.YField, opts.XField)),
		Width:  1000,
		Height: 800,
		XAxis:  chart.XAxis{Name: opts.XField},
		YAxis:  chart.YAxis{Name: opts.YField},
		Series: series,
	}
	if opts.GroupBy != "" {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return renderPNG(&graph)
}

// Map scatters Point geometries by longitude/latitude. Non-Point features
// are skipped; an input with no Point geometry at all is an error.
func Map(features []geomet.Feature, opts Options) ([]byte, error) {
	var lons, lats []float64
	for _, f := range features {
		lon, lat, ok := f.Geometry.PointCoords()
		if !ok {
			continue
		}
		lons = append(lons, lon)
		lats = append(lats, lat)
	}
	if len(lons) == 0 {
		return nil, fmt.Errorf("no Point geometries found for map")
	}

	graph := chart.Chart{
		Title:  title(opts, fmt.Sprintf("%s: Station Map", opts.Collection)),
		Width:  1200,
		Height: 800,
		XAxis:  chart.XAxis{Name: "Longitude"},
		YAxis:  chart.YAxis{Name: "Latitude"},
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: lons,
			YValues: lats,
			Style:   dotStyle(),
		}},
	}
	return renderPNG(&graph)
}

// DetectDateField returns the first known date property present on the
// first feature, or "".
func DetectDateField(features []geomet.Feature) string {
	if len(features) == 0 {
		return ""
	}
	for _, name := range dateFields {
		if _, ok := features[0].Properties[name]; ok {
			return name
		}
	}
	return ""
}

func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func groupKey(v any) string {
	if v == nil {
		return "unknown"
	}
	s := geomet.FormatValue(v)
	if s == "" {
		return "unknown"
	}
	return s
}

func title(opts Options, fallback string) string {
	if opts.Title != "" {
		return opts.Title
	}
	return fallback
}

func dotStyle() chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
	}
}

func barWidth(n int) int {
	// Fit the bars into the fixed canvas with some spacing.
	w := 1000 / (n + 1)
	if w > 60 {
		w = 60
	}
	if w < 4 {
		w = 4
	}
	return w
}

func renderPNG(graph *chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
