package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/geomet-tools/geomet-catalog/internal/geomet"
)

// CollectionList prints an aligned ID/TITLE listing of collections,
// sorted by ID, with a total count.
func CollectionList(w io.Writer, collections []geomet.Collection) {
	if len(collections) == 0 {
		fmt.Fprintln(w, "No collections found.")
		return
	}

	sorted := make([]geomet.Collection, len(collections))
	copy(sorted, collections)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	idWidth := len("ID")
	for _, c := range sorted {
		if len(c.ID) > idWidth {
			idWidth = len(c.ID)
		}
	}
	if idWidth > 50 {
		idWidth = 50
	}

	header.Fprintf(w, "%s  TITLE\n", pad("ID", idWidth))
	fmt.Fprintf(w, "%s  %s\n", strings.Repeat("-", idWidth), strings.Repeat("-", 60))
	for _, c := range sorted {
		title := c.Title
		if title == "" {
			title = "(no title)"
		}
		fmt.Fprintf(w, "%s  %s\n", pad(clip(c.ID, 50), idWidth), title)
	}
	fmt.Fprintf(w, "\nTotal: %d collections\n", len(sorted))
}

// CollectionInfo prints one collection's full metadata block.
func CollectionInfo(w io.Writer, c *geomet.Collection) {
	fmt.Fprintf(w, "Collection: %s\n", c.ID)
	fmt.Fprintf(w, "Title:      %s\n", orNA(c.Title))
	fmt.Fprintf(w, "Description:\n  %s\n", orNA(c.Description))

	if len(c.Keywords) > 0 {
		fmt.Fprintf(w, "Keywords:   %s\n", strings.Join(c.Keywords, ", "))
	}

	if len(c.Extent.Spatial.BBox) > 0 {
		fmt.Fprintf(w, "Spatial:    %v\n", c.Extent.Spatial.BBox[0])
		if c.Extent.Spatial.CRS != "" {
			fmt.Fprintf(w, "CRS:        %s\n", c.Extent.Spatial.CRS)
		}
	}
	if len(c.Extent.Temporal.Interval) > 0 {
		fmt.Fprintf(w, "Temporal:   %s\n", formatInterval(c.Extent.Temporal.Interval[0]))
	}

	if len(c.Links) > 0 {
		fmt.Fprintln(w, "\nLinks:")
		for _, link := range c.Links {
			label := link.Title
			if label == "" {
				label = link.Href
			}
			fmt.Fprintf(w, "  [%s] %s\n", link.Rel, label)
			if link.Title != "" && link.Href != "" {
				fmt.Fprintf(w, "    %s\n", link.Href)
			}
		}
	}
}

// QueryablesTable prints the filterable properties of a collection.
func QueryablesTable(w io.Writer, collectionID string, q *geomet.Queryables) {
	if len(q.Properties) == 0 {
		fmt.Fprintf(w, "No queryable properties for %q.\n", collectionID)
		return
	}

	names := make([]string, 0, len(q.Properties))
	for name := range q.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "Queryable properties for %q:\n", collectionID)
	header.Fprintf(w, "%s  %s  TITLE\n", pad("PROPERTY", 35), pad("TYPE", 15))
	fmt.Fprintf(w, "%s  %s  %s\n", strings.Repeat("-", 35), strings.Repeat("-", 15), strings.Repeat("-", 40))
	for _, name := range names {
		prop := q.Properties[name]
		ptype := prop.Type
		if ptype == "" {
			ptype = "unknown"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", pad(name, 35), pad(ptype, 15), prop.Title)
	}
}

// Categories groups collections by the ID text before the first dash and
// prints each group. IDs without a dash fall under "other".
func Categories(w io.Writer, collections []geomet.Collection) {
	groups := map[string][]geomet.Collection{}
	for _, c := range collections {
		cat := "other"
		if idx := strings.Index(c.ID, "-"); idx > 0 {
			cat = c.ID[:idx]
		}
		groups[cat] = append(groups[cat], c)
	}

	cats := make([]string, 0, len(groups))
	for cat := range groups {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	for _, cat := range cats {
		items := groups[cat]
		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
		fmt.Fprintf(w, "\n[%s] (%d collections)\n", cat, len(items))
		for _, c := range items {
			title := c.Title
			if title == "" {
				title = "(no title)"
			}
			fmt.Fprintf(w, "  %s: %s\n", c.ID, title)
		}
	}
}

// MatchesCollection reports whether the keyword appears in the collection's
// id, title, description, or keywords, case-insensitively.
func MatchesCollection(c geomet.Collection, keyword string) bool {
	searchable := strings.ToLower(strings.Join(append([]string{c.ID, c.Title, c.Description}, c.Keywords...), " "))
	return strings.Contains(searchable, strings.ToLower(keyword))
}

func formatInterval(bounds []*string) string {
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		if b == nil {
			parts[i] = ".."
		} else {
			parts[i] = *b
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
