// Package output provides formatters for rendering query results.
//
// This package defines the Formatter interface and implementations for a
// terminal table, CSV and JSON Lines. Every formatter renders three kinds
// of result: the rows of a *query.Dataset, a single
// *query.AggregationResult, and a slice of query.ColumnProfile.
//
// # Supported Formats
//
//   - table: bordered grid followed by a "rows: N" line (the default)
//   - csv: comma-separated values with header row
//   - json, jsonl: one JSON object per line (suitable for streaming)
//
// # Basic Usage
//
//	formatter, err := output.New("csv", os.Stdout, output.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(ds); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing to Different Destinations
//
// Write to a bytes buffer to get string output:
//
//	var buf bytes.Buffer
//	formatter := output.NewJSONFormatter(&buf)
//	if err := formatter.FormatAggregate(res); err != nil {
//	    log.Fatal(err)
//	}
//
// # Value Handling
//
//   - Column order always follows the dataset's header
//   - Null cells are blank in table and CSV output and null in JSON
//   - Aggregation values are rounded half away from zero to two decimals
//   - CSV cells starting with a formula character are prefixed with a quote
package output
