package spreadsheet

import (
	"fmt"
	"strings"
)

// Row maps a column name to its raw cell value. A value is one of
// string, float64 or bool; absent cells have no key.
type Row map[string]any

// Table is the decoded first sheet of a workbook. Columns come from the
// first row; every following row is data.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Positional returns row i as a slice aligned to Columns, absent cells as nil.
func (t *Table) Positional(i int) []any {
	out := make([]any, len(t.Columns))
	row := t.Rows[i]
	for j, col := range t.Columns {
		if v, ok := row[col]; ok {
			out[j] = v
		}
	}
	return out
}

// headerNames turns the raw first row into unique, non-empty column names.
// Blank headers become __EMPTY and repeats get a numeric suffix, the same
// naming the upstream spreadsheet tooling produces for such headers.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	suffix := make(map[string]int)
	for i, h := range raw {
		base := strings.TrimSpace(h)
		if base == "" {
			base = "__EMPTY"
		}
		name := base
		for used[name] {
			suffix[base]++
			name = fmt.Sprintf("%s_%d", base, suffix[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}
