// Package render prints features and collection metadata as aligned text.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/geomet-tools/geomet-catalog/internal/geomet"
)

const (
	// maxAutoColumns caps the column count when no projection was requested.
	maxAutoColumns = 10
	// maxCellWidth truncates long values so rows stay readable.
	maxCellWidth = 40
)

var header = color.New(color.Bold)

// FeatureTable prints features as an aligned table. When fields is empty the
// columns are id plus the sorted union of property names, capped at
// maxAutoColumns with a note about the rest.
func FeatureTable(w io.Writer, features []geomet.Feature, fields []string) {
	if len(features) == 0 {
		fmt.Fprintln(w, "No features returned.")
		return
	}

	records := make([]geomet.Record, len(features))
	for i, f := range features {
		records[i] = geomet.Flatten(f)
	}

	columns := fields
	truncatedCols := 0
	if len(columns) == 0 {
		all := columnUnion(records)
		columns = all
		if len(all) > maxAutoColumns {
			columns = all[:maxAutoColumns]
			truncatedCols = len(all) - maxAutoColumns
		}
	}

	widths := make([]int, len(columns))
	rows := make([][]string, len(records))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for ri, rec := range records {
		row := make([]string, len(columns))
		for ci, col := range columns {
			cell := clip(geomet.FormatValue(rec.Value(col)), maxCellWidth)
			row[ci] = cell
			if len(cell) > widths[ci] {
				widths[ci] = len(cell)
			}
		}
		rows[ri] = row
	}

	headerCells := make([]string, len(columns))
	ruleCells := make([]string, len(columns))
	for i, col := range columns {
		headerCells[i] = pad(col, widths[i])
		ruleCells[i] = strings.Repeat("-", widths[i])
	}
	header.Fprintln(w, strings.Join(headerCells, "  "))
	fmt.Fprintln(w, strings.Join(ruleCells, "  "))

	for _, row := range rows {
		for i := range row {
			row[i] = pad(row[i], widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(row, "  "), " "))
	}

	if truncatedCols > 0 {
		fmt.Fprintf(w, "\n(Showing first %d of %d columns. Use --fields to select specific columns.)\n",
			maxAutoColumns, maxAutoColumns+truncatedCols)
	}
}

// columnUnion returns id first, then the sorted union of remaining columns
// across all records. longitude/latitude count as ordinary columns here;
// they only get fixed positions in CSV export.
func columnUnion(records []geomet.Record) []string {
	seen := map[string]bool{}
	for _, rec := range records {
		for _, col := range rec.Columns() {
			seen[col] = true
		}
	}
	delete(seen, "id")
	rest := make([]string, 0, len(seen))
	for col := range seen {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append([]string{"id"}, rest...)
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
