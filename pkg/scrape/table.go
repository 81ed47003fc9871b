package scrape

import (
	"fmt"
	"sort"
	"strings"

	// Packages
	uitable "github.com/mutablelogic/go-txtai/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// RecordTable implements table.TableData for scraped records.
type RecordTable []Record

///////////////////////////////////////////////////////////////////////////////
// RECORD TABLE (LIST)

func (t RecordTable) Header() []string {
	return []string{"#", "TEXT", "ATTRIBUTES"}
}

func (t RecordTable) Len() int {
	return len(t)
}

func (t RecordTable) Row(i int) []any {
	r := t[i]
	return []any{fmt.Sprint(i + 1), uitable.Truncate(r.Text, 60), formatAttributes(r.Attributes)}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// formatAttributes returns the attributes as key=value pairs, sorted by key
func formatAttributes(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = fmt.Sprintf("%s=%q", key, attrs[key])
	}
	return uitable.Truncate(strings.Join(pairs, " "), 60)
}
