package output

import (
	"bytes"
	"io"
	"math"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/csvq/query"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON object per line). Keys follow
// the dataset's column order; null cells are encoded as null and missing
// cells are omitted.
func (j *JSONFormatter) Format(ds *query.Dataset) error {
	if ds == nil {
		return nil
	}

	columns := ds.Columns()
	var buf bytes.Buffer
	for _, row := range ds.Rows() {
		buf.Reset()
		buf.WriteByte('{')
		first := true
		for _, col := range columns {
			cell, ok := row.Get(col)
			if !ok {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false

			if err := writeField(&buf, col, cell); err != nil {
				return err
			}
		}
		buf.WriteString("}\n")

		if _, err := j.writer.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// aggregateRecord is the JSON shape of an aggregation result
type aggregateRecord struct {
	Operation string      `json:"operation"`
	Column    string      `json:"column"`
	Count     int         `json:"count"`
	Skipped   int         `json:"skipped"`
	Value     interface{} `json:"value"`
}

// FormatAggregate writes res as a single JSON object
func (j *JSONFormatter) FormatAggregate(res *query.AggregationResult) error {
	if res == nil {
		return nil
	}
	return json.NewEncoder(j.writer).Encode(aggregateRecord{
		Operation: res.Operation.String(),
		Column:    res.Column,
		Count:     res.Count,
		Skipped:   res.Skipped,
		Value:     aggregateValue(res.Value),
	})
}

// profileRecordJSON is the JSON shape of a column profile
type profileRecordJSON struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Numeric    int      `json:"numeric"`
	NonNumeric int      `json:"non_numeric"`
	Missing    int      `json:"missing"`
	Min        *float64 `json:"min"`
	Max        *float64 `json:"max"`
	Avg        *float64 `json:"avg"`
	Samples    []string `json:"samples"`
}

// FormatProfile writes one JSON object per column profile
func (j *JSONFormatter) FormatProfile(profiles []query.ColumnProfile) error {
	encoder := json.NewEncoder(j.writer)
	for _, p := range profiles {
		samples := p.Samples
		if samples == nil {
			samples = []string{}
		}
		rec := profileRecordJSON{
			Name:       p.Name,
			Kind:       p.Kind.String(),
			Numeric:    p.Numeric,
			NonNumeric: p.NonNumeric,
			Missing:    p.Missing,
			Min:        finite(p.Min),
			Max:        finite(p.Max),
			Avg:        finite(p.Avg),
			Samples:    samples,
		}
		if err := encoder.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// aggregateValue keeps finite results as JSON numbers; infinities have no
// JSON number form and are written as strings
func aggregateValue(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return formatAggregateValue(v)
	}
	return json.Number(formatAggregateValue(v))
}

func finite(v *float64) *float64 {
	if v == nil || math.IsInf(*v, 0) || math.IsNaN(*v) {
		return nil
	}
	return v
}

func writeField(buf *bytes.Buffer, col string, cell query.Cell) error {
	key, err := json.Marshal(col)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')

	if !cell.Valid {
		buf.WriteString("null")
		return nil
	}
	val, err := json.Marshal(cell.Value)
	if err != nil {
		return err
	}
	buf.Write(val)
	return nil
}
