package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geomet-tools/geomet-catalog/internal/geomet"
)

// filterFlags are the query flags shared by fetch, export, and visualize.
type filterFlags struct {
	bbox       string
	datetime   string
	sortby     string
	properties []string
	limit      int
	offset     int
}

func (f *filterFlags) register(cmd *cobra.Command, defaultLimit int) {
	flags := cmd.Flags()
	flags.StringVar(&f.bbox, "bbox", "", "bounding box: west,south,east,north (WGS84 degrees)")
	flags.StringVar(&f.datetime, "datetime", "", "datetime filter: instant, start/end, ../end, or start/..")
	flags.StringVar(&f.sortby, "sortby", "", "sort by property (prefix with - for descending)")
	flags.StringArrayVar(&f.properties, "properties", nil, "property equality filter KEY=VALUE (repeatable)")
	flags.IntVar(&f.limit, "limit", defaultLimit, "max items per request")
	flags.IntVar(&f.offset, "offset", 0, "starting offset")
}

// spec validates the flags into a FilterSpec; malformed input is rejected
// here, before any request is issued.
func (f *filterFlags) spec() (geomet.FilterSpec, error) {
	spec := geomet.FilterSpec{
		Limit:  f.limit,
		Offset: f.offset,
	}

	if f.bbox != "" {
		b, err := geomet.ParseBBox(f.bbox)
		if err != nil {
			return geomet.FilterSpec{}, err
		}
		spec.BBox = b
	}
	if f.datetime != "" {
		tf, err := geomet.ParseTimeFilter(f.datetime)
		if err != nil {
			return geomet.FilterSpec{}, err
		}
		spec.Time = tf
	}
	if f.sortby != "" {
		spec.Sort = geomet.ParseSortBy(f.sortby)
	}
	if len(f.properties) > 0 {
		spec.Properties = make(map[string]string, len(f.properties))
		for _, p := range f.properties {
			key, value, found := strings.Cut(p, "=")
			if !found || key == "" {
				return geomet.FilterSpec{}, fmt.Errorf("invalid property filter %q: expected KEY=VALUE", p)
			}
			spec.Properties[key] = value
		}
	}

	return spec, nil
}

// splitFields parses a comma-separated --fields value into a projection.
func splitFields(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}
