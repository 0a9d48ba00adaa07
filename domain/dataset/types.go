package dataset

import (
	"math"
	"strconv"
	"strings"

	"edustat/domain/core"

	"github.com/samber/lo"
)

// Value is one cell of a column. Text keeps the raw form; Number is set when the
// text parses as a finite float.
type Value struct {
	Text    string
	Number  float64
	Numeric bool
}

// Missing reports whether the cell was empty in the source.
func (v Value) Missing() bool {
	return v.Text == ""
}

// ParseValue classifies a raw cell.
func ParseValue(raw string) Value {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Value{Number: math.NaN()}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{Text: text, Number: math.NaN()}
	}
	return Value{Text: text, Number: f, Numeric: true}
}

// NumberValue builds a numeric cell; NaN becomes a missing cell.
func NumberValue(f float64) Value {
	if math.IsNaN(f) {
		return Value{Number: math.NaN()}
	}
	return Value{Text: strconv.FormatFloat(f, 'f', -1, 64), Number: f, Numeric: true}
}

// Column is a named, ordered sequence of values
type Column struct {
	Name   string
	Values []Value
}

// IsNumeric reports whether every non-missing value parses as a number and at
// least one value is present.
func (c Column) IsNumeric() bool {
	seen := false
	for _, v := range c.Values {
		if v.Missing() {
			continue
		}
		if !v.Numeric {
			return false
		}
		seen = true
	}
	return seen
}

// Floats returns the column as float64s with NaN for missing cells.
// A present but non-numeric cell is an error.
func (c Column) Floats() ([]float64, error) {
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		switch {
		case v.Missing():
			out[i] = math.NaN()
		case !v.Numeric:
			return nil, core.NewNonNumericError(c.Name, i+1, v.Text)
		default:
			out[i] = v.Number
		}
	}
	return out, nil
}

// Dataset is an ordered collection of equal-length named columns. Rows are
// aligned by position. The engine never mutates a Dataset.
type Dataset struct {
	columns []Column
	index   map[string]int
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	if d == nil || len(d.columns) == 0 {
		return 0
	}
	return len(d.columns[0].Values)
}

// Names returns the column names in order
func (d *Dataset) Names() []string {
	if d == nil {
		return nil
	}
	return lo.Map(d.columns, func(c Column, _ int) string { return c.Name })
}

// Columns returns the columns in order
func (d *Dataset) Columns() []Column {
	if d == nil {
		return nil
	}
	return d.columns
}

// Column looks a column up by name
func (d *Dataset) Column(name string) (Column, error) {
	if d == nil {
		return Column{}, core.NewNoDataError()
	}
	i, ok := d.index[name]
	if !ok {
		return Column{}, core.NewUnknownColumnError(name, d.Names())
	}
	return d.columns[i], nil
}

// NumericColumns returns the columns whose present values are all numeric
func (d *Dataset) NumericColumns() []Column {
	if d == nil {
		return nil
	}
	return lo.Filter(d.columns, func(c Column, _ int) bool { return c.IsNumeric() })
}

// Validate checks the dataset is loaded and non-empty.
func (d *Dataset) Validate() error {
	if d == nil || len(d.columns) == 0 || d.Len() == 0 {
		return core.NewNoDataError()
	}
	return nil
}
