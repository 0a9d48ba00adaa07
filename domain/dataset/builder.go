package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"edustat/domain/core"
)

// ErrMalformed is returned when source data cannot form a rectangular table
var ErrMalformed = core.ErrMalformedInput

// ColumnData is the in-memory ("dict") form of one column
type ColumnData struct {
	Name   string        `json:"name"`
	Values []interface{} `json:"values"`
}

// FromRows builds a dataset from a header row and string rows, as read from
// CSV or spreadsheet sources. Short rows are padded with missing cells.
func FromRows(headers []string, rows [][]string) (*Dataset, error) {
	columns := make([]Column, len(headers))
	for j, h := range headers {
		columns[j] = Column{Name: strings.TrimSpace(h), Values: make([]Value, len(rows))}
	}

	for i, row := range rows {
		if len(row) > len(headers) {
			return nil, fmt.Errorf("%w: row %d has %d cells but there are %d headers", ErrMalformed, i+1, len(row), len(headers))
		}
		for j := range headers {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			columns[j].Values[i] = ParseValue(cell)
		}
	}

	return newDataset(columns)
}

// FromColumns builds a dataset from ordered in-memory columns
func FromColumns(data []ColumnData) (*Dataset, error) {
	columns := make([]Column, len(data))
	for j, cd := range data {
		values := make([]Value, len(cd.Values))
		for i, raw := range cd.Values {
			v, err := valueOf(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: column %q row %d: %v", ErrMalformed, cd.Name, i+1, err)
			}
			values[i] = v
		}
		columns[j] = Column{Name: strings.TrimSpace(cd.Name), Values: values}
	}
	return newDataset(columns)
}

// FromFloats builds an all-numeric dataset; names and columns pair by position.
func FromFloats(names []string, columns ...[]float64) (*Dataset, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrMalformed, len(names), len(columns))
	}
	cols := make([]Column, len(columns))
	for j, data := range columns {
		values := make([]Value, len(data))
		for i, f := range data {
			values[i] = NumberValue(f)
		}
		cols[j] = Column{Name: names[j], Values: values}
	}
	return newDataset(cols)
}

func newDataset(columns []Column) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrMalformed)
	}

	index := make(map[string]int, len(columns))
	rows := len(columns[0].Values)
	for j, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrMalformed, j+1)
		}
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformed, c.Name)
		}
		if len(c.Values) != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrMalformed, c.Name, len(c.Values), rows)
		}
		index[c.Name] = j
	}

	return &Dataset{columns: columns, index: index}, nil
}

func valueOf(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{Number: math.NaN()}, nil
	case string:
		return ParseValue(v), nil
	case float64:
		return NumberValue(v), nil
	case float32:
		return NumberValue(float64(v)), nil
	case int:
		return NumberValue(float64(v)), nil
	case int64:
		return NumberValue(float64(v)), nil
	case json.Number:
		return ParseValue(v.String()), nil
	case bool:
		return Value{Text: strconv.FormatBool(v), Number: math.NaN()}, nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}
