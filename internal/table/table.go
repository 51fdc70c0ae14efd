// Package table holds the in-memory record table every board is loaded into.
//
// Cells are raw text. Numeric and date interpretation happens on demand
// through ParseNumber and ParseDate and is never stored back.
package table

// ItemNameColumn is the reserved column holding each row's human identifier.
const ItemNameColumn = "Item Name"

// Row maps column name to raw cell text.
type Row map[string]string

// Table is an ordered set of named text columns and the rows over them.
// Every row carries a value (possibly empty) for every column.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// New builds a table with the given column order. Rows missing a column get
// an empty value; keys that are not declared columns are dropped.
func New(columns []string, rows ...Row) *Table {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			continue
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	t.rows = make([]Row, 0, len(rows))
	for _, r := range rows {
		t.rows = append(t.rows, t.conform(r))
	}
	return t
}

func (t *Table) conform(r Row) Row {
	out := make(Row, len(t.columns))
	for _, c := range t.columns {
		out[c] = r[c]
	}
	return out
}

// Columns returns the column names in declared order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Value returns the cell at row i, column name. Unknown columns read as empty.
func (t *Table) Value(i int, name string) string {
	return t.rows[i][name]
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Row {
	out := make(Row, len(t.rows[i]))
	for k, v := range t.rows[i] {
		out[k] = v
	}
	return out
}

// Values returns every cell of one column in row order.
func (t *Table) Values(name string) []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[name]
	}
	return out
}

// Set overwrites a single cell. Setting an undeclared column is a no-op.
func (t *Table) Set(i int, name, value string) {
	if !t.HasColumn(name) {
		return
	}
	t.rows[i][name] = value
}

// Clone returns a deep copy that shares no state with t.
func (t *Table) Clone() *Table {
	return t.Filter(func(Row) bool { return true })
}

// Filter returns a new table holding copies of the rows keep accepts.
// The receiver is never modified.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
		rows:    make([]Row, 0, len(t.rows)),
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, t.conform(r))
		}
	}
	return out
}
