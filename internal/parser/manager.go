package parser

import (
	"context"
	"fmt"
	"log"
	"sort"

	"datajournal/internal/models"
)

// ParserManager manages different types of parsers
type ParserManager struct {
	parsers map[string]Parser
}

// NewParserManager creates a new parser manager with the CSV and ZIP parsers
func NewParserManager(strict bool) (*ParserManager, error) {
	m := &ParserManager{
		parsers: make(map[string]Parser),
	}

	m.RegisterParser(NewCSVParser())

	zipParser, err := NewZIPParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create ZIP parser: %w", err)
	}
	m.RegisterParser(zipParser)

	for _, p := range m.parsers {
		p.SetStrict(strict)
	}
	return m, nil
}

// RegisterParser adds a new parser to the manager
func (m *ParserManager) RegisterParser(parser Parser) {
	m.parsers[parser.Method()] = parser
}

// GetParser retrieves a parser by method
func (m *ParserManager) GetParser(method string) (Parser, error) {
	parser, ok := m.parsers[method]
	if !ok {
		return nil, fmt.Errorf("no parser found for method: %s", method)
	}
	return parser, nil
}

// Methods lists the registered parse methods
func (m *ParserManager) Methods() []string {
	out := make([]string, 0, len(m.parsers))
	for method := range m.parsers {
		out = append(out, method)
	}
	sort.Strings(out)
	return out
}

// ParseSource loads rows from a path or URL using the appropriate parser
func (m *ParserManager) ParseSource(ctx context.Context, method, source string) ([]models.Row, error) {
	parser, err := m.GetParser(method)
	if err != nil {
		return nil, err
	}

	return parser.Parse(ctx, source)
}

// Cleanup performs any necessary cleanup
func (m *ParserManager) Cleanup() {
	for _, p := range m.parsers {
		if err := p.Cleanup(); err != nil {
			log.Printf("Error cleaning up parser: %v", err)
		}
	}
}
