package query

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// epsilon is the tolerance for numeric equality
const epsilon = 1e-9

// Kind classifies a cell for comparison purposes
type Kind int

const (
	KindNull Kind = iota
	KindNumeric
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseNumber coerces s to a float64. Surrounding whitespace is ignored.
// Empty strings, NaN and hex literals are not numbers; values beyond
// float64 range saturate to ±Inf.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isHex(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, false
		}
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// isHex reports whether s carries a 0x prefix, optionally signed
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// Classify reports whether c is null, numeric or text. The result is
// computed per cell; columns may mix kinds freely.
func Classify(c Cell) Kind {
	if !c.Valid {
		return KindNull
	}
	if _, ok := ParseNumber(c.Value); ok {
		return KindNumeric
	}
	return KindText
}

// Compare evaluates `cell op value`.
//
// When both sides coerce to numbers the comparison is numeric, otherwise
// the raw strings are compared. A null cell never matches.
func Compare(cell Cell, op Operator, value string) bool {
	if !cell.Valid {
		return false
	}
	if left, ok := ParseNumber(cell.Value); ok {
		if right, ok := ParseNumber(value); ok {
			return compareNumbers(left, op, right)
		}
	}
	return compareStrings(cell.Value, op, value)
}

// compareNumbers compares two numbers
func compareNumbers(left float64, op Operator, right float64) bool {
	switch op {
	case OpEqual:
		if math.IsInf(left, 0) || math.IsInf(right, 0) {
			return left == right
		}
		return math.Abs(left-right) < epsilon
	case OpGreater:
		return left > right
	case OpLess:
		return left < right
	default:
		return false
	}
}

// compareStrings compares two strings (case-sensitive, byte order)
func compareStrings(left string, op Operator, right string) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpGreater:
		return left > right
	case OpLess:
		return left < right
	default:
		return false
	}
}
