package query

import (
	"fmt"
)

// Query is a parsed set of operations to run against a dataset.
// Any of the expressions may be nil.
type Query struct {
	Where     *FilterCondition
	Aggregate *Aggregation
	OrderBy   *SortSpec
	Limit     int // applied to the row listing only; 0 = unlimited
}

// Result is the outcome of executing a Query.
//
// When the query aggregates, Aggregated is true and Aggregate holds the
// result, which is nil if no numeric values survived. Rows always holds
// the filtered and sorted rows the aggregate was computed from.
type Result struct {
	Rows       *Dataset
	Aggregate  *AggregationResult
	Aggregated bool
}

// Execute runs the query: filter, then sort, then either aggregate or
// apply the row limit. Errors from any stage are returned unchanged.
func (q *Query) Execute(ds *Dataset, diag Diagnostics) (*Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("no dataset to query")
	}

	rows, err := Filter(ds, q.Where, diag)
	if err != nil {
		return nil, err
	}

	if q.OrderBy != nil {
		rows, err = Sort(rows, *q.OrderBy, diag)
		if err != nil {
			return nil, err
		}
	}

	if q.Aggregate != nil {
		res, err := Aggregate(rows, *q.Aggregate, diag)
		if err != nil {
			return nil, err
		}
		return &Result{Rows: rows, Aggregate: res, Aggregated: true}, nil
	}

	return &Result{Rows: rows.Limit(q.Limit)}, nil
}
