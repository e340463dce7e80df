package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vegasq/csvq/query"
)

// Formatter defines the interface for output formatters.
//
// Implementers render datasets, aggregation results and column profiles,
// and allow the output destination to change.
type Formatter interface {
	// Format writes the rows of ds in the formatter's specific format
	Format(ds *query.Dataset) error

	// FormatAggregate writes a single aggregation result
	FormatAggregate(res *query.AggregationResult) error

	// FormatProfile writes one record per column profile
	FormatProfile(profiles []query.ColumnProfile) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Options tune formatter behaviour
type Options struct {
	// MaxCellWidth truncates table cells wider than this many terminal
	// columns. 0 disables truncation.
	MaxCellWidth int
}

// Formats lists the accepted format names
var Formats = []string{"table", "csv", "json", "jsonl"}

// New returns the formatter registered under name
func New(name string, w io.Writer, opts Options) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "table":
		return NewTableFormatter(w, opts.MaxCellWidth), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (supported formats: %s)", name, strings.Join(Formats, ", "))
	}
}

// aggregateFields returns the label/value pairs describing res
func aggregateFields(res *query.AggregationResult) [][2]string {
	return [][2]string{
		{"operation", res.Operation.String()},
		{"column", res.Column},
		{"count", strconv.Itoa(res.Count)},
		{"value", formatAggregateValue(res.Value)},
	}
}

// formatAggregateValue rounds half away from zero to two decimals.
// Infinities are rendered as +Inf and -Inf.
func formatAggregateValue(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// profileColumns are the fields emitted per column profile
var profileColumns = []string{"name", "kind", "numeric", "non_numeric", "missing", "min", "max", "avg", "samples"}

// profileRecord renders p in profileColumns order
func profileRecord(p query.ColumnProfile) []string {
	return []string{
		p.Name,
		p.Kind.String(),
		strconv.Itoa(p.Numeric),
		strconv.Itoa(p.NonNumeric),
		strconv.Itoa(p.Missing),
		formatOptional(p.Min),
		formatOptional(p.Max),
		formatOptional(p.Avg),
		strings.Join(p.Samples, ", "),
	}
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
