package engine

import (
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// TABLE — In-memory ordered rows with named columns
// ============================================================================
// Cells keep their raw text; the column Kind decides how a cell renders as a
// string: null is "nan", an integral float keeps its ".0".
//
// Stages never mutate a Table they receive. Transformations build a new one.
// ============================================================================

// Kind is the coerced type of a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "text"
	}
}

// NullString is how a missing value renders once coerced to text.
const NullString = "nan"

// Column is a named, typed column.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Cell is one field of a row. Null marks a missing value.
type Cell struct {
	Raw  string
	Null bool
}

// Table is an ordered sequence of rows over named columns.
type Table struct {
	columns []Column
	rows    [][]Cell
	index   map[string]int
}

// NewTable builds a Table. Rows are used as given and must have len(columns) cells.
func NewTable(columns []Column, rows [][]Cell) *Table {
	t := &Table{columns: columns, rows: rows}
	t.cacheIndex()
	return t
}

func (t *Table) cacheIndex() {
	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		if _, dup := t.index[c.Name]; !dup {
			t.index[c.Name] = i
		}
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns a copy of the column list.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Header returns the column names in order.
func (t *Table) Header() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Cell returns the cell at row i, column j.
func (t *Table) Cell(i, j int) Cell {
	if i < 0 || i >= len(t.rows) || j < 0 || j >= len(t.rows[i]) {
		return Cell{Null: true}
	}
	return t.rows[i][j]
}

// Value renders the cell at row i of the named column as text.
// Unknown columns and out-of-range rows render as NullString.
func (t *Table) Value(i int, column string) string {
	j, ok := t.index[column]
	if !ok {
		return NullString
	}
	return RenderCell(t.Cell(i, j), t.columns[j].Kind)
}

// Row renders row i as text, one entry per column.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.columns))
	for j, c := range t.columns {
		out[j] = RenderCell(t.Cell(i, j), c.Kind)
	}
	return out
}

// RenderCell formats a cell under the given column kind.
func RenderCell(c Cell, kind Kind) string {
	if c.Null {
		return NullString
	}
	raw := strings.TrimSpace(c.Raw)
	switch kind {
	case KindInt:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return FormatFloat(f)
		}
	}
	return c.Raw
}

// FormatFloat prints f as the shortest round-trip decimal, keeping a ".0"
// suffix on integral values ("2019.0").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return NullString
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
