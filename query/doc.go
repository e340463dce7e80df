// Package query implements the csvq expression language and its engines.
//
// Three small grammars are supported:
//   - conditions: <column><op><value> with op one of =, >, <
//   - aggregations: <column>=<avg|min|max>
//   - sort specs: <column>=<asc|desc>
//
// Every cell is text. Comparisons coerce both sides to numbers when they
// can and fall back to string comparison otherwise; the decision is made
// per row, so a column may mix numeric and textual values.
//
// # Basic Usage
//
//	cond, err := query.ParseCondition("price>100")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	filtered, err := query.Filter(ds, cond, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	agg, _ := query.ParseAggregation("price=avg")
//	res, err := query.Aggregate(filtered, agg, logger)
//
// # Errors
//
// Parsing errors match ErrMalformedExpression and carry the raw input and
// the accepted tokens. References to columns the data lacks match
// ErrUnknownColumn and list the available columns. Everything else
// (skipped rows, cells that are not numbers, empty aggregations) is
// reported through the Diagnostics passed to each call.
//
// # Concurrency
//
// Datasets and rows are immutable; every engine returns a new Dataset.
// Concurrent read-only use needs no locking.
package query
