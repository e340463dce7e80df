package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/csvq/query"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the rows of ds as CSV, header first, columns in dataset
// order. Null and missing cells are empty fields.
func (c *CSVFormatter) Format(ds *query.Dataset) error {
	if ds == nil || len(ds.Columns()) == 0 {
		return nil
	}

	columns := ds.Columns()
	records := make([][]string, 0, ds.Len()+1)
	records = append(records, columns)
	for _, row := range ds.Rows() {
		record := make([]string, len(columns))
		for i, col := range columns {
			if cell, ok := row.Get(col); ok && cell.Valid {
				record[i] = sanitize(cell.Value)
			}
		}
		records = append(records, record)
	}
	return c.write(records)
}

// FormatAggregate writes res as a header and a single record
func (c *CSVFormatter) FormatAggregate(res *query.AggregationResult) error {
	if res == nil {
		return nil
	}

	fields := aggregateFields(res)
	header := make([]string, len(fields))
	record := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f[0]
		record[i] = sanitize(f[1])
	}
	return c.write([][]string{header, record})
}

// FormatProfile writes one record per column profile
func (c *CSVFormatter) FormatProfile(profiles []query.ColumnProfile) error {
	records := make([][]string, 0, len(profiles)+1)
	records = append(records, profileColumns)
	for _, p := range profiles {
		record := profileRecord(p)
		for i := range record {
			record[i] = sanitize(record[i])
		}
		records = append(records, record)
	}
	return c.write(records)
}

func (c *CSVFormatter) write(records [][]string) error {
	csvWriter := csv.NewWriter(c.writer)
	for _, record := range records {
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// sanitize guards against CSV injection by prefixing characters that
// could trigger formula execution in spreadsheet applications. Negative
// numbers are left alone.
func sanitize(val string) string {
	if val == "" {
		return val
	}
	switch val[0] {
	case '-':
		if _, ok := query.ParseNumber(val); ok {
			return val
		}
	case '=', '+', '@', '\t', '\r', '\n', '|':
	default:
		return val
	}
	return "'" + strings.ReplaceAll(val, "'", "''")
}
