package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geomet-tools/geomet-catalog/internal/geomet"
)

var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47}

func climateFeatures() []geomet.Feature {
	rows := []struct {
		date    string
		temp    float64
		minTemp float64
		station string
		lon     float64
		lat     float64
	}{
		{"2023-01-01", -5.2, -9.1, "OTTAWA CDA", -75.7, 45.4},
		{"2023-01-02", -3.8, -7.5, "OTTAWA CDA", -75.7, 45.4},
		{"2023-01-03", -1.1, -4.0, "OTTAWA CDA", -75.7, 45.4},
		{"2023-01-01", 0.4, -2.2, "TORONTO CITY", -79.4, 43.7},
		{"2023-01-02", 1.9, -0.8, "TORONTO CITY", -79.4, 43.7},
	}
	features := make([]geomet.Feature, len(rows))
	for i, r := range rows {
		features[i] = geomet.Feature{
			Type:     "Feature",
			ID:       geomet.FeatureID(r.station + "/" + r.date),
			Geometry: geomet.NewPoint(r.lon, r.lat),
			Properties: map[string]any{
				"LOCAL_DATE":   r.date,
				"TEMP":         r.temp,
				"MIN_TEMP":     r.minTemp,
				"STATION_NAME": r.station,
			},
		}
	}
	return features
}

func TestTimeseries(t *testing.T) {
	png, err := Timeseries(climateFeatures(), Options{Collection: "climate-daily", YField: "TEMP"})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestTimeseries_AutoDetectsDateField(t *testing.T) {
	// No XField given: LOCAL_DATE is picked from the known date fields.
	_, err := Timeseries(climateFeatures(), Options{Collection: "climate-daily", YField: "TEMP"})
	require.NoError(t, err)
}

func TestTimeseries_Grouped(t *testing.T) {
	png, err := Timeseries(climateFeatures(), Options{
		Collection: "climate-daily",
		YField:     "TEMP",
		GroupBy:    "STATION_NAME",
	})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestTimeseries_MissingYField(t *testing.T) {
	_, err := Timeseries(climateFeatures(), Options{Collection: "climate-daily"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y-field")
}

func TestTimeseries_NoValidPairs(t *testing.T) {
	_, err := Timeseries(climateFeatures(), Options{Collection: "climate-daily", YField: "STATION_NAME"})
	require.Error(t, err)
}

func TestBar(t *testing.T) {
	png, err := Bar(climateFeatures(), Options{
		Collection: "climate-daily",
		XField:     "STATION_NAME",
		YField:     "TEMP",
	})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestBar_RequiresBothFields(t *testing.T) {
	_, err := Bar(climateFeatures(), Options{Collection: "climate-daily", YField: "TEMP"})
	require.Error(t, err)
}

func TestScatter(t *testing.T) {
	png, err := Scatter(climateFeatures(), Options{
		Collection: "climate-daily",
		XField:     "MIN_TEMP",
		YField:     "TEMP",
	})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestScatter_Grouped(t *testing.T) {
	png, err := Scatter(climateFeatures(), Options{
		Collection: "climate-daily",
		XField:     "MIN_TEMP",
		YField:     "TEMP",
		GroupBy:    "STATION_NAME",
	})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestMap(t *testing.T) {
	png, err := Map(climateFeatures(), Options{Collection: "climate-daily"})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestMap_NoPoints(t *testing.T) {
	features := []geomet.Feature{{Type: "Feature", ID: "x", Properties: map[string]any{"A": 1.0}}}
	_, err := Map(features, Options{Collection: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Point")
}

func TestDetectDateField(t *testing.T) {
	assert.Equal(t, "LOCAL_DATE", DetectDateField(climateFeatures()))
	assert.Equal(t, "", DetectDateField(nil))
	assert.Equal(t, "", DetectDateField([]geomet.Feature{{Properties: map[string]any{"X": 1.0}}}))
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"timeseries", "bar", "scatter", "map"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Kind(s), k)
	}
	_, err := ParseKind("pie")
	require.Error(t, err)
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{5.2, 5.2, true},
		{"5.2", 5.2, true},
		{7, 7, true},
		{"TORONTO", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := toFloat(tc.in)
		assert.Equal(t, tc.ok, ok)
		if tc.ok {
			assert.Equal(t, tc.want, got)
		}
	}
}
