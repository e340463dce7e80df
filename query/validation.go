package query

import (
	"errors"
	"fmt"
)

// Validation limits for expression input
const (
	// MaxExpressionLength is the maximum accepted expression length in bytes
	MaxExpressionLength = 4096

	// MaxColumnNameLength is the maximum length for a column name
	MaxColumnNameLength = 256
)

var (
	// ErrExpressionTooLong is wrapped when input exceeds MaxExpressionLength
	ErrExpressionTooLong = errors.New("expression too long")

	// ErrColumnNameTooLong is wrapped when a column exceeds MaxColumnNameLength
	ErrColumnNameTooLong = errors.New("column name too long")
)

// validateExpression checks the raw input length
func validateExpression(input string) error {
	if len(input) > MaxExpressionLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrExpressionTooLong, len(input), MaxExpressionLength)
	}
	return nil
}

// validateColumnName checks a parsed column name
func validateColumnName(name string) error {
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}
