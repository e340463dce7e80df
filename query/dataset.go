package query

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Cell is a single field value. A Cell with Valid == false is null.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a non-null cell holding s
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Null is the null cell
var Null = Cell{}

// Row maps column names to cells.
//
// Rows are immutable once built: the accessors never expose the backing
// map, so rows can be shared between datasets without copying.
type Row struct {
	cells map[string]Cell
	extra []string
}

// NewRow builds a row of non-null cells from values
func NewRow(values map[string]string) Row {
	cells := make(map[string]Cell, len(values))
	for col, v := range values {
		cells[col] = Text(v)
	}
	return Row{cells: cells}
}

// RowFromCells builds a row from cells and the surplus fields of an
// overlong source line. Both arguments are copied.
func RowFromCells(cells map[string]Cell, extra []string) Row {
	copied := make(map[string]Cell, len(cells))
	for col, c := range cells {
		copied[col] = c
	}
	var surplus []string
	if len(extra) > 0 {
		surplus = append([]string(nil), extra...)
	}
	return Row{cells: copied, extra: surplus}
}

// Get returns the cell for col and whether the row has that column
func (r Row) Get(col string) (Cell, bool) {
	c, ok := r.cells[col]
	return c, ok
}

// Has reports whether the row carries col
func (r Row) Has(col string) bool {
	_, ok := r.cells[col]
	return ok
}

// Numeric returns the cell for col coerced to a number. The second result
// is false when the column is missing, null or not numeric.
func (r Row) Numeric(col string) (float64, bool) {
	c, ok := r.cells[col]
	if !ok || !c.Valid {
		return 0, false
	}
	return ParseNumber(c.Value)
}

// Keys returns the row's column names, sorted
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r.cells))
	for k := range r.cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of columns the row carries
func (r Row) Len() int {
	return len(r.cells)
}

// Extra returns a copy of the surplus fields, or nil
func (r Row) Extra() []string {
	if len(r.extra) == 0 {
		return nil
	}
	return append([]string(nil), r.extra...)
}

// Equal reports whether two rows hold the same cells and surplus fields
func (r Row) Equal(other Row) bool {
	if len(r.cells) != len(other.cells) || len(r.extra) != len(other.extra) {
		return false
	}
	for col, c := range r.cells {
		if oc, ok := other.cells[col]; !ok || oc != c {
			return false
		}
	}
	for i := range r.extra {
		if r.extra[i] != other.extra[i] {
			return false
		}
	}
	return true
}

// Dataset is an ordered sequence of rows sharing one column list
type Dataset struct {
	columns []string
	index   map[string]struct{}
	rows    []Row
}

// NewDataset creates a dataset. Column order is preserved as given.
func NewDataset(columns []string, rows []Row) *Dataset {
	cols := append([]string(nil), columns...)
	index := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		index[c] = struct{}{}
	}
	return &Dataset{
		columns: cols,
		index:   index,
		rows:    append([]Row(nil), rows...),
	}
}

// Columns returns the declared column names in source order
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// HasColumn reports whether name is a declared column
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Row returns the i-th row
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Rows returns the rows in order. The slice is a copy.
func (d *Dataset) Rows() []Row {
	return append([]Row(nil), d.rows...)
}

// Take returns a dataset holding the rows whose indices are set in sel,
// in their original order
func (d *Dataset) Take(sel *roaring.Bitmap) *Dataset {
	rows := make([]Row, 0, sel.GetCardinality())
	it := sel.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i >= len(d.rows) {
			break
		}
		rows = append(rows, d.rows[i])
	}
	return &Dataset{columns: d.columns, index: d.index, rows: rows}
}

// Limit returns the first n rows. n <= 0 means no limit.
func (d *Dataset) Limit(n int) *Dataset {
	if n <= 0 || n >= len(d.rows) {
		return d.withRows(d.rows)
	}
	return d.withRows(d.rows[:n])
}

// withRows returns a dataset with d's columns and a copy of rows
func (d *Dataset) withRows(rows []Row) *Dataset {
	return &Dataset{
		columns: d.columns,
		index:   d.index,
		rows:    append(make([]Row, 0, len(rows)), rows...),
	}
}

// sortedColumns returns the declared columns sorted, for error messages
func (d *Dataset) sortedColumns() []string {
	cols := d.Columns()
	sort.Strings(cols)
	return cols
}
