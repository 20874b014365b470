package parser

import (
	"context"
	"log"
	"net/http"

	"datajournal/internal/models"
)

// CSVParser implements Parser for a plain CSV file on disk or behind a URL
type CSVParser struct {
	client *http.Client
	strict bool
}

// NewCSVParser creates a new CSV parser instance
func NewCSVParser() *CSVParser {
	return &CSVParser{client: newHTTPClient()}
}

// Method returns the parser type
func (p *CSVParser) Method() string {
	return "csv"
}

// Parse implements the Parser interface
func (p *CSVParser) Parse(ctx context.Context, source string) ([]models.Row, error) {
	log.Printf("Starting to parse CSV: %s", source)

	rc, err := openSource(ctx, p.client, source)
	if err != nil {
		log.Printf("Error opening source: %v", err)
		return nil, NewParseError("open", err)
	}
	defer rc.Close()

	rows, err := decodeRows(ctx, rc, p.strict)
	if err != nil {
		log.Printf("Error decoding CSV: %v", err)
		return nil, err
	}

	log.Printf("Successfully completed parsing %d rows", len(rows))
	return rows, nil
}

// Cleanup has nothing to release for plain CSV
func (p *CSVParser) Cleanup() error {
	return nil
}

// SetStrict toggles fail-fast numeric validation
func (p *CSVParser) SetStrict(strict bool) {
	p.strict = strict
}
