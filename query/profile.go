package query

import (
	"strings"
)

// ColumnKind is the inferred type of a column
type ColumnKind int

const (
	ColumnUnknown ColumnKind = iota
	ColumnInteger
	ColumnFloat
	ColumnBoolean
	ColumnString
)

func (k ColumnKind) String() string {
	switch k {
	case ColumnInteger:
		return "integer"
	case ColumnFloat:
		return "float"
	case ColumnBoolean:
		return "boolean"
	case ColumnString:
		return "string"
	default:
		return "unknown"
	}
}

// ColumnProfile summarises one column of a dataset
type ColumnProfile struct {
	Name       string
	Kind       ColumnKind
	Numeric    int      // cells that coerce to a number
	NonNumeric int      // present, non-blank cells that do not
	Missing    int      // rows lacking the column, null or blank cells
	Min        *float64 // nil unless Numeric > 0
	Max        *float64
	Avg        *float64
	Samples    []string // distinct values in first-seen order
}

// IsNumeric reports whether the column's inferred kind is a number
func (p ColumnProfile) IsNumeric() bool {
	return p.Kind == ColumnInteger || p.Kind == ColumnFloat
}

// Profile infers a kind and basic statistics for every declared column of
// ds. At most sampleSize distinct sample values are kept per column.
func Profile(ds *Dataset, sampleSize int) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(ds.columns))
	for _, col := range ds.columns {
		profiles = append(profiles, profileColumn(ds, col, sampleSize))
	}
	return profiles
}

func profileColumn(ds *Dataset, col string, sampleSize int) ColumnProfile {
	p := ColumnProfile{Name: col}
	seen := make(map[string]bool)
	var sum float64

	for _, row := range ds.rows {
		cell, ok := row.Get(col)
		if !ok || !cell.Valid || strings.TrimSpace(cell.Value) == "" {
			p.Missing++
			continue
		}

		if len(p.Samples) < sampleSize && !seen[cell.Value] {
			seen[cell.Value] = true
			p.Samples = append(p.Samples, cell.Value)
		}

		p.Kind = widenKind(p.Kind, detectKind(cell.Value))

		num, ok := ParseNumber(cell.Value)
		if !ok {
			p.NonNumeric++
			continue
		}
		p.Numeric++
		sum += num
		if p.Min == nil || num < *p.Min {
			v := num
			p.Min = &v
		}
		if p.Max == nil || num > *p.Max {
			v := num
			p.Max = &v
		}
	}

	if p.Numeric > 0 {
		avg := sum / float64(p.Numeric)
		p.Avg = &avg
	}

	return p
}

// detectKind infers the kind of a single non-blank value
func detectKind(v string) ColumnKind {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "false", "yes", "no":
		return ColumnBoolean
	}
	if _, ok := ParseNumber(v); !ok {
		return ColumnString
	}
	if strings.ContainsAny(v, ".eE") {
		return ColumnFloat
	}
	return ColumnInteger
}

// widenKind merges the kind seen so far with the kind of the next value.
// Integers widen to floats; any other disagreement makes the column text.
func widenKind(current, next ColumnKind) ColumnKind {
	switch {
	case current == ColumnUnknown || current == next:
		return next
	case current == ColumnInteger && next == ColumnFloat,
		current == ColumnFloat && next == ColumnInteger:
		return ColumnFloat
	default:
		return ColumnString
	}
}
