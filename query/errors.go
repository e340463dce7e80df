package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedExpression matches every expression parsing error
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrUnknownColumn matches every reference to a column the data lacks
	ErrUnknownColumn = errors.New("unknown column")
)

// ExprKind names the grammar an expression belongs to
type ExprKind string

const (
	KindCondition   ExprKind = "condition"
	KindAggregation ExprKind = "aggregation"
	KindSort        ExprKind = "sort"
)

// vocabulary returns the noun used for the kind's token set
func (k ExprKind) vocabulary() string {
	switch k {
	case KindCondition:
		return "operators"
	case KindAggregation:
		return "operations"
	case KindSort:
		return "directions"
	default:
		return "tokens"
	}
}

// ExpressionError describes why a condition, aggregation or sort string
// was rejected
type ExpressionError struct {
	Kind      ExprKind
	Input     string   // raw input as given by the caller
	Token     string   // offending token, if any
	Reason    string   // human-readable cause
	Supported []string // tokens the grammar accepts
	Err       error    // underlying cause, if any
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("malformed %s %q: %s (supported %s: %s)",
		e.Kind, e.Input, e.Reason, e.Kind.vocabulary(), strings.Join(e.Supported, ", "))
}

// Unwrap returns the underlying cause
func (e *ExpressionError) Unwrap() error {
	return e.Err
}

// Is makes every ExpressionError match ErrMalformedExpression
func (e *ExpressionError) Is(target error) bool {
	return target == ErrMalformedExpression
}

// ColumnError reports a column absent from the data
type ColumnError struct {
	Column    string
	Available []string // sorted
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found; available columns: %s",
		e.Column, strings.Join(e.Available, ", "))
}

// Is makes every ColumnError match ErrUnknownColumn
func (e *ColumnError) Is(target error) bool {
	return target == ErrUnknownColumn
}
