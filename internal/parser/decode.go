package parser

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"datajournal/internal/models"
)

// requiredColumns must appear in the header row, in any order and case
var requiredColumns = []string{"state", "abbr", "poverty", "age", "income", "healthcare", "smokes", "obesity"}

var errNotNumeric = errors.New("value is not numeric")

// isRemote reports whether the source should be fetched over HTTP
func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// openSource opens a local file or downloads a URL
func openSource(ctx context.Context, client *http.Client, source string) (io.ReadCloser, error) {
	if !isRemote(source) {
		log.Printf("Opening local file: %s", source)
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return f, nil
	}

	log.Printf("Creating HTTP request for URL: %s", source)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/zip, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	log.Printf("Received response with status code: %d", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

// decodeRows reads the header and every data row of a CSV stream
func decodeRows(ctx context.Context, r io.Reader, strict bool) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	log.Printf("Reading CSV headers...")
	headers, err := reader.Read()
	if err != nil {
		return nil, NewParseError("header", fmt.Errorf("failed to read CSV headers: %w", err))
	}
	log.Printf("Found %d columns: %v", len(headers), headers)

	headerMap := make(map[string]int)
	for i, header := range headers {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := headerMap[col]; !ok {
			return nil, NewParseError("header", fmt.Errorf("missing column %q", col))
		}
	}

	var rows []models.Row
	for {
		select {
		case <-ctx.Done():
			log.Printf("Context cancelled, stopping processing")
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			log.Printf("Finished reading CSV, processed %d rows", len(rows))
			return rows, nil
		}
		if err != nil {
			return nil, NewParseError("row", fmt.Errorf("failed to read CSV row: %w", err))
		}

		get := func(col string) string {
			if idx := headerMap[col]; idx < len(record) {
				return record[idx]
			}
			return ""
		}
		// a cell missing from a short row is NaN, unlike a blank one
		number := func(col string) float64 {
			if headerMap[col] >= len(record) {
				return math.NaN()
			}
			return parseNumber(record[headerMap[col]])
		}

		row := models.Row{
			State:      get("state"),
			Abbr:       get("abbr"),
			Poverty:    number("poverty"),
			Age:        number("age"),
			Income:     number("income"),
			Healthcare: number("healthcare"),
			Smokes:     number("smokes"),
			Obesity:    number("obesity"),
		}

		if row.HasNaN() {
			if strict {
				line, _ := reader.FieldPos(0)
				return nil, NewParseError("row", fmt.Errorf("line %d (%s): %w", line, row.State, errNotNumeric))
			}
			log.Printf("Warning: row for %q has non-numeric values", row.State)
		}
		rows = append(rows, row)
	}
}

// parseNumber coerces text the way a browser's unary plus does: blank is
// zero and anything unparseable is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	// ParseFloat knows words and digit separators a browser rejects
	if strings.ContainsAny(lower, "_inaptyfx") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
