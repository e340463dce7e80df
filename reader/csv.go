package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/csvq/query"
)

// utf8BOM is stripped from the first header name
const utf8BOM = "\ufeff"

// readCSV decodes a CSV stream with a header row into a dataset.
//
// Short records yield rows that lack the trailing columns; surplus fields
// of long records are kept in the row's overflow slot.
func readCSV(r io.Reader, delimiter rune) (*query.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return query.NewDataset(nil, nil), nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	columns := uniqueColumns(header)

	var rows []query.Row
	for {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read CSV record %d: %w", len(rows)+1, err)
		}

		cells := make(map[string]query.Cell, len(header))
		n := len(record)
		if n > len(header) {
			n = len(header)
		}
		for i := 0; i < n; i++ {
			cells[header[i]] = query.Text(record[i])
		}

		var extra []string
		if len(record) > len(header) {
			extra = record[len(header):]
		}
		rows = append(rows, query.RowFromCells(cells, extra))
	}

	return query.NewDataset(columns, rows), nil
}

// uniqueColumns drops repeated header names, keeping the first position.
// A repeated name's value comes from its last occurrence in each record.
func uniqueColumns(header []string) []string {
	seen := make(map[string]bool, len(header))
	columns := make([]string, 0, len(header))
	for _, h := range header {
		if seen[h] {
			continue
		}
		seen[h] = true
		columns = append(columns, h)
	}
	return columns
}
