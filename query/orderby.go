package query

import (
	"sort"
	"strings"
)

// sortKey is the precomputed ordering key of one row
type sortKey struct {
	num  float64
	text string
}

// Sort returns the rows of ds ordered by spec. The input is left untouched
// and ties keep their original relative order.
//
// A column whose present, non-blank cells all coerce to numbers (and has
// at least one) is ordered numerically, with null, missing and blank
// cells ordering as 0. Any other column is ordered by lower-cased text,
// with null and missing cells ordering as "".
func Sort(ds *Dataset, spec SortSpec, diag Diagnostics) (*Dataset, error) {
	diag = diagnosticsOrNop(diag)

	if !ds.HasColumn(spec.Column) {
		return nil, &ColumnError{Column: spec.Column, Available: ds.sortedColumns()}
	}

	sorted := ds.withRows(ds.rows)
	if len(sorted.rows) < 2 {
		return sorted, nil
	}

	numeric, nonNumeric := numericColumn(ds, spec.Column)
	if !numeric && nonNumeric > 0 && nonNumeric < ds.Len() {
		diag.Warn("column mixes numeric and text values; sorting as text",
			"column", spec.Column, "non_numeric", nonNumeric)
	}

	keys := make([]sortKey, len(sorted.rows))
	for i, row := range sorted.rows {
		keys[i] = rowSortKey(row, spec.Column, numeric)
	}

	// Sort a permutation so keys and rows move together.
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		cmp := compareKeys(keys[order[i]], keys[order[j]], numeric)
		if spec.Direction == Desc {
			return cmp > 0
		}
		return cmp < 0
	})

	rows := make([]Row, len(order))
	for i, idx := range order {
		rows[i] = sorted.rows[idx]
	}
	sorted.rows = rows

	return sorted, nil
}

// numericColumn reports whether col qualifies for numeric ordering and how
// many present, non-blank cells failed coercion
func numericColumn(ds *Dataset, col string) (bool, int) {
	numbers, others := 0, 0
	for _, row := range ds.rows {
		cell, ok := row.Get(col)
		if !ok || !cell.Valid || strings.TrimSpace(cell.Value) == "" {
			continue
		}
		if _, ok := ParseNumber(cell.Value); ok {
			numbers++
		} else {
			others++
		}
	}
	return numbers > 0 && others == 0, others
}

func rowSortKey(row Row, col string, numeric bool) sortKey {
	if numeric {
		num, _ := row.Numeric(col)
		return sortKey{num: num}
	}
	cell, ok := row.Get(col)
	if !ok || !cell.Valid {
		return sortKey{}
	}
	return sortKey{text: strings.ToLower(cell.Value)}
}

// compareKeys returns -1, 0 or +1
func compareKeys(a, b sortKey, numeric bool) int {
	if numeric {
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.text, b.text)
}
