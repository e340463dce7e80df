package query

// Aggregate reduces a column of ds to a scalar.
//
// It returns nil without error when ds is empty or when no cell of the
// column coerces to a number. The column is checked against the keys of
// the first row. Null, blank and non-numeric cells are skipped.
func Aggregate(ds *Dataset, agg Aggregation, diag Diagnostics) (*AggregationResult, error) {
	diag = diagnosticsOrNop(diag)

	if ds.Len() == 0 {
		return nil, nil
	}

	first := ds.rows[0]
	if !first.Has(agg.Column) {
		return nil, &ColumnError{Column: agg.Column, Available: first.Keys()}
	}

	values := make([]float64, 0, ds.Len())
	skipped := 0
	for _, row := range ds.rows {
		if !row.Has(agg.Column) {
			continue
		}
		num, ok := row.Numeric(agg.Column)
		if !ok {
			skipped++
			continue
		}
		values = append(values, num)
	}

	if len(values) == 0 {
		diag.Warn("aggregation skipped: column has no numeric values",
			"column", agg.Column, "operation", agg.Operation.String(), "skipped", skipped)
		return nil, nil
	}
	if skipped > 0 {
		diag.Warn("non-numeric values skipped during aggregation",
			"column", agg.Column, "skipped", skipped)
	}

	result := &AggregationResult{
		Operation: agg.Operation,
		Column:    agg.Column,
		Count:     len(values),
		Skipped:   skipped,
	}

	switch agg.Operation {
	case AggAvg:
		result.Value = evaluateAvg(values)
	case AggMin:
		result.Value = evaluateMin(values)
	case AggMax:
		result.Value = evaluateMax(values)
	}

	return result, nil
}

// evaluateAvg returns the arithmetic mean of a non-empty slice. The mean
// is updated incrementally so large finite inputs do not overflow.
func evaluateAvg(values []float64) float64 {
	mean := 0.0
	for i, v := range values {
		mean += (v - mean) / float64(i+1)
	}
	return mean
}

// evaluateMin returns the smallest value of a non-empty slice
func evaluateMin(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// evaluateMax returns the largest value of a non-empty slice
func evaluateMax(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
