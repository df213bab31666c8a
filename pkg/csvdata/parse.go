// Package csvdata turns delimited text with a header row into ordered
// header→value row maps. Parsing is all-or-nothing: a malformed stream
// yields a ParseError and no rows.
package csvdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row maps a column header to the cell value for one data row.
type Row map[string]string

// Get returns the first non-empty value among the named columns. Upstream
// datasets are inconsistent about header naming ("Name" vs "Worker Name"),
// so lookups take fallbacks.
func (r Row) Get(names ...string) string {
	for _, n := range names {
		if v, ok := r[n]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether any of the named columns exists in the row, even if
// empty.
func (r Row) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := r[n]; ok {
			return true
		}
	}
	return false
}

// ParseError reports a malformed input table.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("csv parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("csv parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a CSV stream with a header row and returns one Row per data
// row, input order preserved. Rows may have fewer cells than the header;
// missing trailing cells are simply absent from the map.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("missing header row")}
	}
	if err != nil {
		return nil, wrap(err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrap(err)
		}

		row := make(Row, len(header))
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			row[header[i]] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// wrap lifts the line number out of csv.ParseError when present.
func wrap(err error) *ParseError {
	if perr, ok := err.(*csv.ParseError); ok {
		return &ParseError{Line: perr.Line, Err: perr.Err}
	}
	return &ParseError{Err: err}
}
