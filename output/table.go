package output

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/csvq/query"
)

// ellipsis marks a truncated cell
const ellipsis = "..."

// TableFormatter outputs rows as a bordered grid
type TableFormatter struct {
	writer       io.Writer
	maxCellWidth int
}

// NewTableFormatter creates a new table formatter. Cells wider than
// maxCellWidth terminal columns are truncated; 0 disables truncation.
func NewTableFormatter(w io.Writer, maxCellWidth int) *TableFormatter {
	return &TableFormatter{writer: w, maxCellWidth: maxCellWidth}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes the rows of ds as a table followed by a row count.
// Null and missing cells are blank.
func (t *TableFormatter) Format(ds *query.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		_, err := fmt.Fprintln(t.writer, "no data to display")
		return err
	}

	columns := ds.Columns()
	table := t.newTable()
	table.SetHeader(columns)

	for _, row := range ds.Rows() {
		record := make([]string, len(columns))
		for i, col := range columns {
			if c, ok := row.Get(col); ok && c.Valid {
				record[i] = t.truncate(c.Value)
			}
		}
		table.Append(record)
	}
	table.Render()

	_, err := fmt.Fprintf(t.writer, "rows: %d\n", ds.Len())
	return err
}

// FormatAggregate writes res as a two-column key/value table
func (t *TableFormatter) FormatAggregate(res *query.AggregationResult) error {
	if res == nil {
		_, err := fmt.Fprintln(t.writer, "no data to display")
		return err
	}

	table := t.newTable()
	table.SetHeader([]string{"field", "value"})
	for _, f := range aggregateFields(res) {
		table.Append([]string{f[0], f[1]})
	}
	table.Render()
	return nil
}

// FormatProfile writes one table row per column profile
func (t *TableFormatter) FormatProfile(profiles []query.ColumnProfile) error {
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(t.writer, "no data to display")
		return err
	}

	table := t.newTable()
	table.SetHeader(profileColumns)
	for _, p := range profiles {
		record := profileRecord(p)
		for i := range record {
			record[i] = t.truncate(record[i])
		}
		table.Append(record)
	}
	table.Render()
	return nil
}

func (t *TableFormatter) newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(t.writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// truncate shortens s to at most maxCellWidth terminal columns
func (t *TableFormatter) truncate(s string) string {
	if t.maxCellWidth <= 0 || runewidth.StringWidth(s) <= t.maxCellWidth {
		return s
	}
	if t.maxCellWidth <= len(ellipsis) {
		return runewidth.Truncate(s, t.maxCellWidth, "")
	}
	return runewidth.Truncate(s, t.maxCellWidth, ellipsis)
}
