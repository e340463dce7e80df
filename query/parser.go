package query

import (
	"sort"
	"strings"
)

// ParseCondition parses a filter condition such as "price>100".
//
// Blank input means "no condition" and returns nil without error. The
// compound operators <>, !=, <=, >= and == are rejected by name.
func ParseCondition(input string) (*FilterCondition, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, nil
	}

	supported := operatorTokens()
	fail := func(token, reason string, err error) (*FilterCondition, error) {
		return nil, &ExpressionError{
			Kind:      KindCondition,
			Input:     input,
			Token:     token,
			Reason:    reason,
			Supported: supported,
			Err:       err,
		}
	}

	if err := validateExpression(s); err != nil {
		return fail("", err.Error(), err)
	}

	for _, bad := range unsupportedOperators {
		if strings.Contains(s, bad) {
			return fail(bad, `unsupported operator "`+bad+`"`, nil)
		}
	}

	// Candidates are tried longest first; the first one present anywhere in
	// the input wins, split at its first occurrence.
	candidates := append([]Operator(nil), supportedOperators...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].Token()) > len(candidates[j].Token())
	})

	for _, op := range candidates {
		pos := strings.Index(s, op.Token())
		if pos < 0 {
			continue
		}

		column := strings.TrimSpace(s[:pos])
		value := strings.TrimSpace(s[pos+len(op.Token()):])

		if column == "" {
			return fail(op.Token(), "missing column name", nil)
		}
		if err := validateColumnName(column); err != nil {
			return fail("", err.Error(), err)
		}
		if value == "" {
			return fail(op.Token(), "missing value to compare against", nil)
		}

		return &FilterCondition{Column: column, Operator: op, Value: value}, nil
	}

	return fail("", "no supported operator found", nil)
}

// ParseAggregation parses "column=operation" where operation is one of
// avg, min, max (case-insensitive). Blank input is an error.
func ParseAggregation(input string) (Aggregation, error) {
	supported := aggregationTokens()
	column, token, err := splitPair(KindAggregation, input, supported)
	if err != nil {
		return Aggregation{}, err
	}

	for _, op := range supportedAggregations {
		if strings.EqualFold(token, op.String()) {
			return Aggregation{Column: column, Operation: op}, nil
		}
	}

	return Aggregation{}, &ExpressionError{
		Kind:      KindAggregation,
		Input:     input,
		Token:     token,
		Reason:    `unsupported operation "` + token + `"`,
		Supported: supported,
	}
}

// ParseSort parses "column=direction" where direction is asc or desc
// (case-insensitive). Blank input is an error.
func ParseSort(input string) (SortSpec, error) {
	supported := directionTokens()
	column, token, err := splitPair(KindSort, input, supported)
	if err != nil {
		return SortSpec{}, err
	}

	for _, dir := range supportedDirections {
		if strings.EqualFold(token, dir.String()) {
			return SortSpec{Column: column, Direction: dir}, nil
		}
	}

	return SortSpec{}, &ExpressionError{
		Kind:      KindSort,
		Input:     input,
		Token:     token,
		Reason:    `unsupported direction "` + token + `"`,
		Supported: supported,
	}
}

// splitPair splits "left=right" on the first '=' and validates both sides
// are present
func splitPair(kind ExprKind, input string, supported []string) (string, string, error) {
	fail := func(reason string, err error) (string, string, error) {
		return "", "", &ExpressionError{
			Kind:      kind,
			Input:     input,
			Reason:    reason,
			Supported: supported,
			Err:       err,
		}
	}

	s := strings.TrimSpace(input)
	if s == "" {
		return fail("empty expression, expected column=<"+strings.Join(supported, "|")+">", nil)
	}
	if err := validateExpression(s); err != nil {
		return fail(err.Error(), err)
	}

	column, token, found := strings.Cut(s, "=")
	if !found {
		return fail(`missing "=" separator, expected column=<`+strings.Join(supported, "|")+">", nil)
	}

	column = strings.TrimSpace(column)
	token = strings.TrimSpace(token)

	if column == "" {
		return fail("missing column name", nil)
	}
	if err := validateColumnName(column); err != nil {
		return fail(err.Error(), err)
	}
	if token == "" {
		return fail("missing "+strings.TrimSuffix(kind.vocabulary(), "s"), nil)
	}

	return column, token, nil
}

func operatorTokens() []string {
	tokens := make([]string, len(supportedOperators))
	for i, op := range supportedOperators {
		tokens[i] = op.Token()
	}
	return tokens
}

func aggregationTokens() []string {
	tokens := make([]string, len(supportedAggregations))
	for i, op := range supportedAggregations {
		tokens[i] = op.String()
	}
	return tokens
}

func directionTokens() []string {
	tokens := make([]string, len(supportedDirections))
	for i, d := range supportedDirections {
		tokens[i] = d.String()
	}
	return tokens
}
