package spreadsheet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableWithRows(n int) *Table {
	t := &Table{Columns: []string{"A", "B", "C"}}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, Row{"A": fmt.Sprintf("a%d", i), "B": float64(i), "C": i%2 == 0})
	}
	return t
}

func TestSampleRowCountAndPreviewLength(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 6, 10, 200} {
		t.Run(fmt.Sprintf("%d rows", n), func(t *testing.T) {
			s := Sample(tableWithRows(n), PreviewRows)
			assert.Equal(t, n, s.TotalRows)
			assert.Len(t, s.Preview, min(n, PreviewRows))
			assert.Equal(t, []string{"A", "B", "C"}, s.Columns)
		})
	}
}

func TestSamplePreviewIsPositional(t *testing.T) {
	table := &Table{
		Columns: []string{"Name", "Score", "Note"},
		Rows: []Row{
			{"Name": "ann", "Score": 3.0},
			{"Note": "late"},
		},
	}

	s := Sample(table, PreviewRows)
	require.Len(t, s.Preview, 2)
	assert.Equal(t, []any{"ann", 3.0, nil}, s.Preview[0])
	assert.Equal(t, []any{nil, nil, "late"}, s.Preview[1])
}

func TestSampleEmpty(t *testing.T) {
	for name, table := range map[string]*Table{
		"nil":   nil,
		"empty": {Columns: []string{}, Rows: []Row{}},
	} {
		t.Run(name, func(t *testing.T) {
			s := Sample(table, PreviewRows)
			assert.NotNil(t, s.Columns)
			assert.Empty(t, s.Columns)
			assert.NotNil(t, s.Preview)
			assert.Empty(t, s.Preview)
			assert.Zero(t, s.TotalRows)
		})
	}
}

func TestSampleHeaderOnly(t *testing.T) {
	s := Sample(&Table{Columns: []string{"A", "B"}}, PreviewRows)
	assert.Equal(t, []string{"A", "B"}, s.Columns)
	assert.Empty(t, s.Preview)
	assert.Zero(t, s.TotalRows)
}
