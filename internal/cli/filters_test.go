package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geomet-tools/geomet-catalog/internal/geomet"
)

func TestFilterFlags_Spec(t *testing.T) {
	ff := filterFlags{
		bbox:       "-80,43,-70,47",
		datetime:   "2023-01-01/2023-01-31",
		sortby:     "-LOCAL_DATE",
		properties: []string{"STATION_NUMBER=02HA003", "PROVINCE_CODE=ON"},
		limit:      25,
		offset:     50,
	}

	spec, err := ff.spec()
	require.NoError(t, err)

	require.NotNil(t, spec.BBox)
	assert.Equal(t, -80.0, spec.BBox.West)
	assert.Equal(t, 47.0, spec.BBox.North)
	require.NotNil(t, spec.Time)
	assert.Equal(t, geomet.TimeRange, spec.Time.Kind)
	require.NotNil(t, spec.Sort)
	assert.Equal(t, "LOCAL_DATE", spec.Sort.Field)
	assert.True(t, spec.Sort.Descending)
	assert.Equal(t, map[string]string{
		"STATION_NUMBER": "02HA003",
		"PROVINCE_CODE":  "ON",
	}, spec.Properties)
	assert.Equal(t, 25, spec.Limit)
	assert.Equal(t, 50, spec.Offset)
}

func TestFilterFlags_Spec_Empty(t *testing.T) {
	ff := filterFlags{limit: 10}

	spec, err := ff.spec()
	require.NoError(t, err)

	assert.Nil(t, spec.BBox)
	assert.Nil(t, spec.Time)
	assert.Nil(t, spec.Sort)
	assert.Nil(t, spec.Properties)
	assert.Equal(t, 10, spec.Limit)
}

func TestFilterFlags_Spec_Errors(t *testing.T) {
	tests := []struct {
		name string
		ff   filterFlags
	}{
		{"bad bbox", filterFlags{bbox: "-80,43,-70"}},
		{"bad datetime", filterFlags{datetime: "../.."}},
		{"property without equals", filterFlags{properties: []string{"STATION_NUMBER"}}},
		{"property with empty key", filterFlags{properties: []string{"=02HA003"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.ff.spec()
			assert.Error(t, err)
		})
	}
}

func TestSplitFields(t *testing.T) {
	assert.Nil(t, splitFields(""))
	assert.Equal(t, []string{"TEMP"}, splitFields("TEMP"))
	assert.Equal(t, []string{"TEMP", "DEW_POINT_TEMP"}, splitFields("TEMP, DEW_POINT_TEMP"))
	assert.Equal(t, []string{"TEMP"}, splitFields("TEMP,,"))
}
