// Package table provides the generic tabular result type returned by the
// database readers, along with the column-name normalization applied to
// every result set.
package table

import (
	"fmt"
	"strings"
)

// Table is an ordered, in-memory result set with named columns.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New creates an empty table with the given (already normalized) columns.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds one row. The number of values must match the column count.
func (t *Table) Append(values ...any) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("table: row has %d values, want %d", len(values), len(t.Columns))
	}
	t.Rows = append(t.Rows, values)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// NormalizeColumn folds a raw column name into the snake_case form used
// throughout the module: lower-cased, every run of non-alphanumeric
// characters collapsed to a single underscore, leading/trailing
// underscores trimmed. "TRANSAMOUNT" -> "transamount",
// "Initial Balance" -> "initial_balance".
func NormalizeColumn(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeColumns applies NormalizeColumn to every name.
func NormalizeColumns(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeColumn(n)
	}
	return out
}
