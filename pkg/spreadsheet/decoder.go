package spreadsheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"excel-analytics-be/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned when neither the file name nor the
	// content identify a spreadsheet format this package can read.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrNoSheets is returned for a workbook without any worksheet.
	ErrNoSheets = errors.New("workbook contains no sheets")
	// ErrMalformed is returned when the bytes are not a well-formed spreadsheet.
	ErrMalformed = errors.New("malformed spreadsheet")
	// ErrSourceUnavailable is returned when the byte source cannot be read.
	ErrSourceUnavailable = errors.New("spreadsheet source unavailable")
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Format identifies a supported on-disk spreadsheet encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var extensionFormats = map[string]Format{
	".xlsx": FormatXLSX,
	".xlsm": FormatXLSX,
	".xltx": FormatXLSX,
	".xltm": FormatXLSX,
	".csv":  FormatCSV,
}

// DecodeError wraps any failure to turn a byte source into a Table.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Source is the read side of a byte store.
type Source interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// FormatOf reports the format registered for a lower-case extension such
// as ".xlsx".
func FormatOf(ext string) (Format, bool) {
	f, ok := extensionFormats[ext]
	return f, ok
}

// DetectFormat resolves the format from the file extension, falling back
// to content sniffing when the extension is unknown.
func DetectFormat(name string, data []byte) (Format, error) {
	if f, ok := extensionFormats[strings.ToLower(filepath.Ext(name))]; ok {
		return f, nil
	}
	if len(data) == 0 {
		return "", ErrUnsupportedFormat
	}
	mt := mimetype.Detect(data)
	switch {
	case mt.Is(xlsxMIME):
		return FormatXLSX, nil
	case mt.Is("text/csv"), mt.Is("text/tab-separated-values"):
		return FormatCSV, nil
	}
	return "", ErrUnsupportedFormat
}

// DecodeFile reads the object at location in full and decodes it. Nothing
// is cached: every call reads and parses the bytes again.
//
// Bytes that are gone come back as a *DecodeError wrapping
// ErrSourceUnavailable. Any other read failure is returned as is, so the
// caller can tell a broken store from a broken file.
func DecodeFile(ctx context.Context, src Source, location, name string) (*Table, error) {
	data, err := src.Read(ctx, location)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, &DecodeError{Name: name, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return Decode(name, data)
}

// Decode parses the first sheet of data. The first row is the header.
func Decode(name string, data []byte) (*Table, error) {
	format, err := DetectFormat(name, data)
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}

	var t *Table
	switch format {
	case FormatXLSX:
		t, err = decodeWorkbook(data)
	case FormatCSV:
		t, err = decodeDelimited(data)
	}
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}
	return t, nil
}

func decodeWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return buildTable(rows, func(row, col int, raw string) any {
		return workbookValue(f, sheet, row, col, raw)
	}), nil
}

// workbookValue types a raw cell using the cell type stored in the sheet.
// Cells without an explicit type are numbers in OOXML.
func workbookValue(f *excelize.File, sheet string, row, col int, raw string) any {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return raw
	}
	if n, ok := ParseNumber(raw); ok {
		return n
	}
	return raw
}

func decodeDelimited(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return buildTable(records, func(_, _ int, raw string) any {
		return textValue(raw)
	}), nil
}

// sniffDelimiter picks the most frequent of ',', ';' and tab on the first line.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func textValue(raw string) any {
	s := strings.TrimSpace(raw)
	if n, ok := ParseNumber(s); ok {
		return n
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

// ParseNumber accepts finite decimal numbers only. Hex floats, which
// strconv would otherwise take, are refused.
func ParseNumber(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// buildTable maps raw records onto a Table. Record 0 is the header, empty
// cells are left absent and rows with no cells at all are dropped.
func buildTable(records [][]string, value func(row, col int, raw string) any) *Table {
	t := &Table{Columns: []string{}, Rows: []Row{}}
	if len(records) == 0 {
		return t
	}
	t.Columns = headerNames(records[0])

	for i := 1; i < len(records); i++ {
		row := Row{}
		for j, raw := range records[i] {
			if j >= len(t.Columns) {
				break
			}
			if raw == "" {
				continue
			}
			row[t.Columns[j]] = value(i, j, raw)
		}
		if len(row) == 0 {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
