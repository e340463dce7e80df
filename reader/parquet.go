package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/csvq/query"
)

// readParquet decodes a whole parquet file into a dataset.
//
// Column order follows the schema's top-level fields. NULL values become
// null cells; everything else is rendered as text.
func readParquet(r io.ReaderAt, size int64) (*query.Dataset, error) {
	pqFile, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pqFile.Schema().Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name()
	}

	pr := parquet.NewReader(pqFile)
	defer func() { _ = pr.Close() }()

	var rows []query.Row
	for {
		values := make(map[string]interface{})
		if err := pr.Read(&values); err != nil {
			// Use errors.Is for proper EOF detection
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		// Every schema column is present; absent map keys are NULLs.
		cells := make(map[string]query.Cell, len(columns))
		for _, col := range columns {
			cells[col] = formatValue(values[col])
		}
		rows = append(rows, query.RowFromCells(cells, nil))
	}

	return query.NewDataset(columns, rows), nil
}

// readParquetStream buffers a (decompressed) stream so it can be opened
// as a parquet file, which needs random access
func readParquetStream(r io.Reader) (*query.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet stream: %w", err)
	}
	return readParquet(bytes.NewReader(data), int64(len(data)))
}

// formatValue renders a parquet value as a cell
func formatValue(v interface{}) query.Cell {
	if v == nil {
		return query.Null
	}

	switch val := v.(type) {
	case string:
		return query.Text(val)
	case []byte:
		return query.Text(string(val))
	case bool:
		return query.Text(strconv.FormatBool(val))
	case int:
		return query.Text(strconv.FormatInt(int64(val), 10))
	case int8:
		return query.Text(strconv.FormatInt(int64(val), 10))
	case int16:
		return query.Text(strconv.FormatInt(int64(val), 10))
	case int32:
		return query.Text(strconv.FormatInt(int64(val), 10))
	case int64:
		return query.Text(strconv.FormatInt(val, 10))
	case uint:
		return query.Text(strconv.FormatUint(uint64(val), 10))
	case uint8:
		return query.Text(strconv.FormatUint(uint64(val), 10))
	case uint16:
		return query.Text(strconv.FormatUint(uint64(val), 10))
	case uint32:
		return query.Text(strconv.FormatUint(uint64(val), 10))
	case uint64:
		return query.Text(strconv.FormatUint(val, 10))
	case float32:
		return query.Text(strconv.FormatFloat(float64(val), 'g', -1, 32))
	case float64:
		return query.Text(strconv.FormatFloat(val, 'g', -1, 64))
	case time.Time:
		return query.Text(val.Format(time.RFC3339Nano))
	default:
		return query.Text(fmt.Sprintf("%v", val))
	}
}
