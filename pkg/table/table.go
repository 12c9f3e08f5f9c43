// Package table holds the in-memory tabular form every pipeline stage reads
// and produces.
package table

import "strings"

// Value is a single cell. Valid is false when the cell is absent.
type Value struct {
	Text  string
	Valid bool
}

// Null returns an absent cell
func Null() Value {
	return Value{}
}

// String returns a present cell holding s
func String(s string) Value {
	return Value{Text: s, Valid: true}
}

// IsNull reports whether the cell is absent
func (v Value) IsNull() bool {
	return !v.Valid
}

// Row is one record keyed by column name. Index is the row's position in the
// source table and is kept across stages for error attribution.
type Row struct {
	Index  int
	Values map[string]Value
}

// NewRow creates an empty row for the given source index
func NewRow(index int) Row {
	return Row{Index: index, Values: make(map[string]Value)}
}

// Get returns the cell for column, or a null cell when the column is absent
func (r Row) Get(column string) Value {
	return r.Values[column]
}

// Set stores a cell for column
func (r Row) Set(column string, v Value) {
	r.Values[column] = v
}

// Clone returns a deep copy of the row
func (r Row) Clone() Row {
	out := Row{Index: r.Index, Values: make(map[string]Value, len(r.Values))}
	for k, v := range r.Values {
		out.Values[k] = v
	}
	return out
}

// Table is an ordered sequence of rows sharing a column list
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given columns
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: make([]Row, 0)}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a row to the end of the table
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// HasColumn reports whether the table header contains name
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// NullCount returns how many rows hold a null cell in column
func (t *Table) NullCount(column string) int {
	count := 0
	for _, r := range t.Rows {
		if r.Get(column).IsNull() {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the table. Stages clone their input so the
// caller's table is never modified.
func (t *Table) Clone() *Table {
	out := New(t.Columns)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, r.Clone())
	}
	return out
}

// Select returns a new table holding copies of the rows keep accepts
func (t *Table) Select(keep func(Row) bool) *Table {
	out := New(t.Columns)
	for _, r := range t.Rows {
		if keep(r) {
			out.Append(r.Clone())
		}
	}
	return out
}

// NormalizeColumnName trims a header name and lower-cases it
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
