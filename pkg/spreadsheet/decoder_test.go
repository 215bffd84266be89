package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"excel-analytics-be/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any, extraSheets ...string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	for _, name := range extraSheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(name, "A1", "ignored"))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type memSource map[string][]byte

func (m memSource) Read(_ context.Context, location string) ([]byte, error) {
	b, ok := m[location]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return b, nil
}

type brokenSource struct{ err error }

func (b brokenSource) Read(context.Context, string) ([]byte, error) {
	return nil, b.err
}

func TestDecodeWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Region", "Sales", "Active"},
		{"North", 120, true},
		{"South", 80.5, false},
		{"East", "n/a"},
	}, "Other")

	table, err := Decode("report.xlsx", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Sales", "Active"}, table.Columns)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, "North", table.Rows[0]["Region"])
	assert.Equal(t, float64(120), table.Rows[0]["Sales"])
	assert.Equal(t, true, table.Rows[0]["Active"])
	assert.Equal(t, 80.5, table.Rows[1]["Sales"])
	assert.Equal(t, false, table.Rows[1]["Active"])
	assert.Equal(t, "n/a", table.Rows[2]["Sales"])

	_, present := table.Rows[2]["Active"]
	assert.False(t, present, "empty cell must be absent")
}

func TestDecodeWorkbookReadsFirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "first"))
	_, err := f.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Second", "A1", "second"))
	require.NoError(t, f.SetCellValue("Second", "A2", "x"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := Decode("book.xlsx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestDecodeEmptySheet(t *testing.T) {
	data := buildWorkbook(t, nil)

	table, err := Decode("empty.xlsx", data)
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
	assert.Equal(t, 0, table.Len())
}

func TestDecodeSkipsBlankRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Name"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "a"))
	require.NoError(t, f.SetCellValue("Sheet1", "A4", "b"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := Decode("gaps.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "b", table.Rows[1]["Name"])
}

func TestDecodeMalformedWorkbook(t *testing.T) {
	_, err := Decode("broken.xlsx", []byte("definitely not a zip archive"))
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := Decode("picture.png", []byte("\x89PNG\r\n\x1a\n0000"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeCSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBFcity;temp;raining\nOslo;4.5;TRUE\nRome;;false\n\nLima;19;x\n")

	table, err := Decode("weather.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"city", "temp", "raining"}, table.Columns)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, 4.5, table.Rows[0]["temp"])
	assert.Equal(t, true, table.Rows[0]["raining"])
	assert.Equal(t, false, table.Rows[1]["raining"])
	assert.NotContains(t, table.Rows[1], "temp")
	assert.Equal(t, "x", table.Rows[2]["raining"])
}

func TestDecodeCSVKeepsNaNAsText(t *testing.T) {
	table, err := Decode("n.csv", []byte("v\nNaN\nInf\n0x1p4\n-0X10\n"))
	require.NoError(t, err)
	assert.Equal(t, "NaN", table.Rows[0]["v"])
	assert.Equal(t, "Inf", table.Rows[1]["v"])
	assert.Equal(t, "0x1p4", table.Rows[2]["v"])
	assert.Equal(t, "-0X10", table.Rows[3]["v"])
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"-3.5", -3.5, true},
		{"1e3", 1000, true},
		{"0", 0, true},
		{"0.25", 0.25, true},
		{"0x1p4", 0, false},
		{"+0x10", 0, false},
		{"NaN", 0, false},
		{"-Inf", 0, false},
		{"1_000", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseNumber(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseNumber(%q)", tt.in)
	}
}

func TestDecodeFile(t *testing.T) {
	src := memSource{"stored/abc.xlsx": buildWorkbook(t, [][]any{{"A"}, {1}})}

	table, err := DecodeFile(context.Background(), src, "stored/abc.xlsx", "abc.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = DecodeFile(context.Background(), src, "stored/missing.xlsx", "missing.xlsx")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestDecodeFileReadFailureIsNotADecodeError(t *testing.T) {
	cause := errors.New("connection reset by peer")

	_, err := DecodeFile(context.Background(), brokenSource{err: cause}, "stored/abc.xlsx", "abc.xlsx")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrSourceUnavailable)

	var decodeErr *DecodeError
	assert.False(t, errors.As(err, &decodeErr))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    []byte
		want    Format
		wantErr bool
	}{
		{name: "xlsx extension", file: "a.XLSX", want: FormatXLSX},
		{name: "macro workbook", file: "a.xlsm", want: FormatXLSX},
		{name: "csv extension", file: "a.csv", want: FormatCSV},
		{name: "unknown extension no content", file: "a.bin", wantErr: true},
		{name: "legacy xls", file: "a.xls", data: []byte{0xD0, 0xCF, 0x11, 0xE0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.file, tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatSniffsWorkbookContent(t *testing.T) {
	data := buildWorkbook(t, [][]any{{"A"}})
	got, err := DetectFormat("upload", data)
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, got)
}

func TestHeaderNames(t *testing.T) {
	got := headerNames([]string{"A", "", "A", " B ", "", "A_1", "A"})
	assert.Equal(t, []string{"A", "__EMPTY", "A_1", "B", "__EMPTY_1", "A_1_1", "A_2"}, got)
}

func BenchmarkDecodeWorkbook(b *testing.B) {
	f := excelize.NewFile()
	for i := 1; i <= 1000; i++ {
		_ = f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i), &[]any{fmt.Sprintf("r%d", i), i, float64(i) / 3})
	}
	buf, _ := f.WriteToBuffer()
	_ = f.Close()
	data := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode("bench.xlsx", data); err != nil {
			b.Fatal(err)
		}
	}
}
