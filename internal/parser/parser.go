// internal/parser/parser.go
package parser

import (
	"context"
	"fmt"

	"datajournal/internal/models"
)

// Parser defines the interface for different dataset loading strategies
type Parser interface {
	// Method returns the parser type (e.g., "csv", "zip")
	Method() string

	// Parse loads every row from the given path or URL
	Parse(ctx context.Context, source string) ([]models.Row, error)

	// Cleanup performs any necessary cleanup
	Cleanup() error

	// SetStrict makes non-numeric values fail the parse instead of becoming NaN
	SetStrict(strict bool)
}

// ParseError represents a parsing error with a specific stage
type ParseError struct {
	Stage string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s stage: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(stage string, err error) *ParseError {
	return &ParseError{
		Stage: stage,
		Err:   err,
	}
}
