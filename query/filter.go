package query

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Select returns the indices of the rows of ds that satisfy cond.
//
// A nil condition selects every row. The column must be declared by ds;
// rows that lack it are skipped rather than treated as errors.
func Select(ds *Dataset, cond *FilterCondition, diag Diagnostics) (*roaring.Bitmap, error) {
	diag = diagnosticsOrNop(diag)
	sel := roaring.New()

	if cond == nil {
		if ds.Len() > 0 {
			sel.AddRange(0, uint64(ds.Len()))
		}
		return sel, nil
	}

	if !ds.HasColumn(cond.Column) {
		return nil, &ColumnError{Column: cond.Column, Available: ds.sortedColumns()}
	}

	_, valueIsNumber := ParseNumber(cond.Value)
	missing, fallback := 0, 0

	for i, row := range ds.rows {
		cell, ok := row.Get(cond.Column)
		if !ok {
			missing++
			continue
		}
		if valueIsNumber && Classify(cell) == KindText {
			fallback++
		}
		if Compare(cell, cond.Operator, cond.Value) {
			sel.Add(uint32(i))
		}
	}

	if missing > 0 {
		diag.Warn("rows without the filter column were skipped",
			"column", cond.Column, "rows", missing)
	}
	if fallback > 0 {
		diag.Warn("non-numeric cells compared as text",
			"column", cond.Column, "value", cond.Value, "rows", fallback)
	}
	if !valueIsNumber && cond.Operator != OpEqual {
		diag.Warn("ordering comparison against a text value uses lexicographic order",
			"condition", cond.String())
	}

	return sel, nil
}

// Filter returns the rows of ds that satisfy cond, in their original
// order. A nil condition returns a copy of the whole dataset.
func Filter(ds *Dataset, cond *FilterCondition, diag Diagnostics) (*Dataset, error) {
	if cond == nil {
		return ds.withRows(ds.rows), nil
	}

	sel, err := Select(ds, cond, diag)
	if err != nil {
		return nil, err
	}
	return ds.Take(sel), nil
}
