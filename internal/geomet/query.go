package geomet

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// BBox is a rectangular spatial filter in WGS84 degrees.
type BBox struct {
	West  float64
	South float64
	East  float64
	North float64
}

// ParseBBox parses "west,south,east,north". Non-numeric components or a
// reversed ordering are rejected with InvalidFilterError.
func ParseBBox(s string) (*BBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, &InvalidFilterError{Field: "bbox", Reason: "expected 4 comma-separated numbers (west,south,east,north)"}
	}
	nums := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, &InvalidFilterError{Field: "bbox", Reason: fmt.Sprintf("component %q is not a number", p)}
		}
		nums[i] = v
	}
	b := &BBox{West: nums[0], South: nums[1], East: nums[2], North: nums[3]}
	if b.West >= b.East {
		return nil, &InvalidFilterError{Field: "bbox", Reason: "west must be less than east"}
	}
	if b.South >= b.North {
		return nil, &InvalidFilterError{Field: "bbox", Reason: "south must be less than north"}
	}
	return b, nil
}

// String renders the box as the bbox query parameter value. FormatFloat with
// precision -1 keeps the shortest representation that round-trips.
func (b BBox) String() string {
	comps := [4]float64{b.West, b.South, b.East, b.North}
	parts := make([]string, 4)
	for i, c := range comps {
		parts[i] = strconv.FormatFloat(c, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// TimeKind discriminates the four shapes of the datetime filter grammar.
type TimeKind int

const (
	TimeInstant   TimeKind = iota // d
	TimeRange                     // d1/d2
	TimeOpenStart                 // ../d
	TimeOpenEnd                   // d/..
)

// TimeFilter is a tagged union over the datetime grammar. Bounds keep the
// caller's original text so serialization is lossless.
type TimeFilter struct {
	Kind  TimeKind
	Start string // empty for TimeOpenStart
	End   string // empty for TimeOpenEnd
}

// instantLayouts are the date shapes the API accepts for a single bound.
var instantLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
}

func validInstant(s string) bool {
	for _, layout := range instantLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// ParseTimeFilter parses the documented datetime grammar: an ISO date or
// datetime, "start/end", "../end", or "start/..".
func ParseTimeFilter(s string) (*TimeFilter, error) {
	if s == "" {
		return nil, &InvalidFilterError{Field: "datetime", Reason: "empty expression"}
	}
	if !strings.Contains(s, "/") {
		if !validInstant(s) {
			return nil, &InvalidFilterError{Field: "datetime", Reason: fmt.Sprintf("%q is not an ISO date or datetime", s)}
		}
		return &TimeFilter{Kind: TimeInstant, Start: s, End: s}, nil
	}

	parts := strings.SplitN(s, "/", 2)
	start, end := parts[0], parts[1]
	switch {
	case start == ".." && end == "..":
		return nil, &InvalidFilterError{Field: "datetime", Reason: "range cannot be open on both ends"}
	case start == "..":
		if !validInstant(end) {
			return nil, &InvalidFilterError{Field: "datetime", Reason: fmt.Sprintf("end %q is not an ISO date or datetime", end)}
		}
		return &TimeFilter{Kind: TimeOpenStart, End: end}, nil
	case end == "..":
		if !validInstant(start) {
			return nil, &InvalidFilterError{Field: "datetime", Reason: fmt.Sprintf("start %q is not an ISO date or datetime", start)}
		}
		return &TimeFilter{Kind: TimeOpenEnd, Start: start}, nil
	default:
		if !validInstant(start) {
			return nil, &InvalidFilterError{Field: "datetime", Reason: fmt.Sprintf("start %q is not an ISO date or datetime", start)}
		}
		if !validInstant(end) {
			return nil, &InvalidFilterError{Field: "datetime", Reason: fmt.Sprintf("end %q is not an ISO date or datetime", end)}
		}
		return &TimeFilter{Kind: TimeRange, Start: start, End: end}, nil
	}
}

// String renders the filter as the datetime query parameter value.
func (t TimeFilter) String() string {
	switch t.Kind {
	case TimeRange:
		return t.Start + "/" + t.End
	case TimeOpenStart:
		return "../" + t.End
	case TimeOpenEnd:
		return t.Start + "/.."
	default:
		return t.Start
	}
}

// SortBy orders results by one queryable property.
type SortBy struct {
	Field      string
	Descending bool
}

// ParseSortBy reads the CLI convention: "-" prefix means descending.
func ParseSortBy(s string) *SortBy {
	if strings.HasPrefix(s, "-") {
		return &SortBy{Field: strings.TrimPrefix(s, "-"), Descending: true}
	}
	return &SortBy{Field: s}
}

func (s SortBy) String() string {
	if s.Descending {
		return "-" + s.Field
	}
	return s.Field
}

// FilterSpec collects the filter parameters of one items query. It is built
// once from caller input; the pagination driver copies it per request to
// advance Limit and Offset, nothing else mutates it.
type FilterSpec struct {
	BBox       *BBox
	Time       *TimeFilter
	Properties map[string]string // equality filters, case-sensitive names
	Sort       *SortBy
	Fields     []string // projection of returned properties
	Limit      int
	Offset     int
}

// Params builds the query parameter mapping for one items request. Limit,
// offset, and f=json are always present; everything else only when set.
func (s FilterSpec) Params() url.Values {
	params := url.Values{}
	params.Set("f", "json")
	params.Set("limit", strconv.Itoa(s.Limit))
	params.Set("offset", strconv.Itoa(s.Offset))
	if s.BBox != nil {
		params.Set("bbox", s.BBox.String())
	}
	if s.Time != nil {
		params.Set("datetime", s.Time.String())
	}
	if s.Sort != nil {
		params.Set("sortby", s.Sort.String())
	}
	if len(s.Fields) > 0 {
		params.Set("properties", strings.Join(s.Fields, ","))
	}
	for name, value := range s.Properties {
		params.Set(name, value)
	}
	return params
}
