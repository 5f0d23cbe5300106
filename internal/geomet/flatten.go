package geomet

// Record is a feature projected into a flat, ordered list of columns:
// id, longitude, latitude, then each property in sorted name order.
type Record []Field

// Field is one named column of a flat record.
type Field struct {
	Name  string
	Value any // nil renders as an empty cell
}

// Columns returns the record's column names in order.
func (r Record) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Name
	}
	return cols
}

// Value returns the named column's value, or nil when absent.
func (r Record) Value(name string) any {
	for _, f := range r {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// Flatten projects a feature into a flat record. Point geometry fills the
// longitude and latitude columns; absent or non-Point geometry leaves them
// empty rather than failing.
func Flatten(f Feature) Record {
	rec := Record{{Name: "id", Value: string(f.ID)}}

	if lon, lat, ok := f.Geometry.PointCoords(); ok {
		rec = append(rec, Field{Name: "longitude", Value: lon}, Field{Name: "latitude", Value: lat})
	} else {
		rec = append(rec, Field{Name: "longitude"}, Field{Name: "latitude"})
	}

	for _, name := range f.PropertyNames() {
		rec = append(rec, Field{Name: name, Value: f.Properties[name]})
	}
	return rec
}

// FlattenStrict is Flatten for collaborators that require Point geometry:
// any other geometry type is an UnsupportedGeometryError. Absent geometry
// is still tolerated.
func FlattenStrict(f Feature) (Record, error) {
	if f.Geometry != nil && f.Geometry.Type != "Point" {
		return nil, &UnsupportedGeometryError{Type: f.Geometry.Type}
	}
	return Flatten(f), nil
}
