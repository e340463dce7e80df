package query

import (
	"fmt"
	"strings"
	"testing"
)

// productColumns is the header of the product fixtures
var productColumns = []string{"name", "brand", "price", "rating"}

// productsDataset returns the product fixture used across the engine tests
func productsDataset(t *testing.T) *Dataset {
	t.Helper()
	return buildDataset(t, productColumns,
		[]string{"iphone 15 pro", "apple", "999", "4.9"},
		[]string{"galaxy s24 ultra", "samsung", "1199", "4.8"},
		[]string{"redmi note 13", "xiaomi", "299", "4.6"},
		[]string{"iphone 14", "apple", "799", "4.7"},
		[]string{"galaxy a54", "samsung", "349", "4.2"},
	)
}

// buildDataset creates a dataset from positional records. A record shorter
// than columns yields a row lacking the trailing columns; the literal
// "<null>" becomes a null cell.
func buildDataset(t *testing.T, columns []string, records ...[]string) *Dataset {
	t.Helper()
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if len(rec) > len(columns) {
			t.Fatalf("record %v has more fields than columns %v", rec, columns)
		}
		cells := make(map[string]Cell, len(rec))
		for i, v := range rec {
			if v == "<null>" {
				cells[columns[i]] = Null
				continue
			}
			cells[columns[i]] = Text(v)
		}
		rows = append(rows, RowFromCells(cells, nil))
	}
	return NewDataset(columns, rows)
}

// column returns the values of col in row order, "<missing>" for rows
// lacking it and "<null>" for null cells
func column(ds *Dataset, col string) []string {
	out := make([]string, 0, ds.Len())
	for _, row := range ds.Rows() {
		c, ok := row.Get(col)
		switch {
		case !ok:
			out = append(out, "<missing>")
		case !c.Valid:
			out = append(out, "<null>")
		default:
			out = append(out, c.Value)
		}
	}
	return out
}

// recorder is a Diagnostics that keeps every message
type recorder struct {
	warnings []string
	errors   []string
}

func (r *recorder) Warn(msg string, args ...any) {
	r.warnings = append(r.warnings, format(msg, args))
}

func (r *recorder) Error(msg string, args ...any) {
	r.errors = append(r.errors, format(msg, args))
}

// contains reports whether any warning contains substr
func (r *recorder) contains(substr string) bool {
	for _, w := range r.warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func format(msg string, args []any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	return b.String()
}
