// Package dataset loads the labeled message corpus, cleans it into binary
// classes and splits it into train and test folds
package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is returned when an expected column is absent
var ErrMissingColumn = errors.New("missing column")

// Table is a parsed delimited file. Index holds the row index values when the
// first column was read as an index
type Table struct {
	Header    []string
	IndexName string
	Index     []string
	Rows      [][]string
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Drop returns a copy of the table without the named columns. Every name must exist
func (t *Table) Drop(names ...string) (*Table, error) {
	remove := make(map[int]bool, len(names))
	for _, name := range names {
		i := t.ColumnIndex(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q not found in %v", ErrMissingColumn, name, t.Header)
		}
		remove[i] = true
	}

	keep := func(row []string) []string {
		out := make([]string, 0, len(row)-len(remove))
		for i, cell := range row {
			if !remove[i] {
				out = append(out, cell)
			}
		}
		return out
	}

	out := &Table{
		Header:    keep(t.Header),
		IndexName: t.IndexName,
		Index:     t.Index,
		Rows:      make([][]string, len(t.Rows)),
	}
	for r, row := range t.Rows {
		out.Rows[r] = keep(row)
	}
	return out, nil
}

// Rename returns a copy of the table with columns renamed old → new. Every old name must exist
func (t *Table) Rename(names map[string]string) (*Table, error) {
	header := append([]string(nil), t.Header...)
	for from, to := range names {
		i := t.ColumnIndex(from)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q not found in %v", ErrMissingColumn, from, t.Header)
		}
		header[i] = to
	}
	return &Table{
		Header:    header,
		IndexName: t.IndexName,
		Index:     t.Index,
		Rows:      t.Rows,
	}, nil
}

// rowName identifies a data row in error messages
func (t *Table) rowName(r int) string {
	if r < len(t.Index) {
		return fmt.Sprintf("row %d (index %q)", r+1, t.Index[r])
	}
	return fmt.Sprintf("row %d", r+1)
}
