package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"excel-analytics-be/pkg/spreadsheet"
)

// MaxPoints caps both the label and the value sequence. Rows past the cap
// are dropped, not sampled.
const MaxPoints = 50

// Presentation defaults carried on every series.
const (
	DefaultBackgroundColor = "rgba(54, 162, 235, 0.2)"
	DefaultBorderColor     = "rgba(54, 162, 235, 1)"
	DefaultBorderWidth     = 2
)

// Series is one named sequence of values.
type Series struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

// Dataset is a chart-ready projection of a table. Labels[i] pairs with
// Datasets[0].Data[i].
type Dataset struct {
	Labels   []string `json:"labels"`
	Datasets []Series `json:"datasets"`
}

// Project builds the dataset for the x/y column pair. chartType is
// metadata for the renderer and does not change the projection.
func Project(t *spreadsheet.Table, xAxis, yAxis, chartType string) Dataset {
	n := min(t.Len(), MaxPoints)

	labels := make([]string, 0, n)
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		row := t.Rows[i]
		labels = append(labels, Label(row[xAxis]))
		values = append(values, Number(row[yAxis]))
	}

	return Dataset{
		Labels: labels,
		Datasets: []Series{{
			Label:           yAxis,
			Data:            values,
			BackgroundColor: DefaultBackgroundColor,
			BorderColor:     DefaultBorderColor,
			BorderWidth:     DefaultBorderWidth,
		}},
	}
}

// Label renders a cell in its display form. Absent cells render empty.
func Label(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

// Number coerces a cell to a finite number. Anything that is not numeric
// text or a number becomes 0.
func Number(v any) float64 {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case string:
		f, ok := spreadsheet.ParseNumber(strings.TrimSpace(x))
		if !ok {
			return 0
		}
		n = f
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
