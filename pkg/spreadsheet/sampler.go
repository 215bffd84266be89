package spreadsheet

// PreviewRows is how many data rows an upload preview carries.
const PreviewRows = 5

// Schema is what a caller needs to pick chart axes without fetching the
// whole table.
type Schema struct {
	Columns   []string
	Preview   [][]any
	TotalRows int
}

// Sample returns the header, the first limit data rows positionally and
// the data row count. A nil or empty table yields an empty schema.
func Sample(t *Table, limit int) Schema {
	s := Schema{Columns: []string{}, Preview: [][]any{}}
	if t == nil {
		return s
	}
	s.Columns = append(s.Columns, t.Columns...)
	s.TotalRows = t.Len()

	n := min(limit, t.Len())
	for i := 0; i < n; i++ {
		s.Preview = append(s.Preview, t.Positional(i))
	}
	return s
}
