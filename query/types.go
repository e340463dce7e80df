package query

import "fmt"

// Operator is a filter comparison operator
type Operator int

const (
	OpEqual   Operator = iota // =
	OpGreater                 // >
	OpLess                    // <
)

// Token returns the operator as written in a condition
func (o Operator) Token() string {
	switch o {
	case OpEqual:
		return "="
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// String returns the operator name
func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "EQUAL"
	case OpGreater:
		return "GREATER"
	case OpLess:
		return "LESS"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// AggregateOp is a scalar aggregation over a column
type AggregateOp int

const (
	AggAvg AggregateOp = iota
	AggMin
	AggMax
)

// String returns the lower-case operation name used in expressions
func (a AggregateOp) String() string {
	switch a {
	case AggAvg:
		return "avg"
	case AggMin:
		return "min"
	case AggMax:
		return "max"
	default:
		return fmt.Sprintf("AggregateOp(%d)", int(a))
	}
}

// Direction is a sort direction
type Direction int

const (
	Asc Direction = iota
	Desc
)

// String returns the lower-case direction name used in expressions
func (d Direction) String() string {
	switch d {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Vocabularies in the order they are tried and reported.
var (
	supportedOperators    = []Operator{OpEqual, OpGreater, OpLess}
	supportedAggregations = []AggregateOp{AggAvg, AggMin, AggMax}
	supportedDirections   = []Direction{Asc, Desc}

	// Compound operators, rejected before the single-character scan.
	unsupportedOperators = []string{"<>", "!=", "<=", ">=", "=="}
)

// FilterCondition is a parsed column/operator/value condition.
// Build it with ParseCondition; a zero value is not a valid condition.
type FilterCondition struct {
	Column   string
	Operator Operator
	Value    string
}

// String renders the condition back into expression syntax
func (c FilterCondition) String() string {
	return c.Column + c.Operator.Token() + c.Value
}

// Aggregation is a parsed column=operation pair
type Aggregation struct {
	Column    string
	Operation AggregateOp
}

func (a Aggregation) String() string {
	return a.Column + "=" + a.Operation.String()
}

// SortSpec is a parsed column=direction pair
type SortSpec struct {
	Column    string
	Direction Direction
}

func (s SortSpec) String() string {
	return s.Column + "=" + s.Direction.String()
}

// AggregationResult holds the outcome of Aggregate.
//
// Count is the number of cells that coerced to a number. Skipped counts
// cells of the column that were null, blank or not numeric.
type AggregationResult struct {
	Operation AggregateOp
	Column    string
	Value     float64
	Count     int
	Skipped   int
}

func (r AggregationResult) String() string {
	return fmt.Sprintf("%s(%s) = %g over %d values", r.Operation, r.Column, r.Value, r.Count)
}
