package parser

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"datajournal/internal/models"
)

// ZIPParser implements Parser for ZIP archives containing the CSV dataset
type ZIPParser struct {
	tempDir string
	client  *http.Client
	strict  bool
}

// NewZIPParser creates a new ZIP parser instance
func NewZIPParser() (*ZIPParser, error) {
	tempDir, err := os.MkdirTemp("", "datajournal_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &ZIPParser{
		tempDir: tempDir,
		client:  newHTTPClient(),
	}, nil
}

// Method returns the parser type
func (p *ZIPParser) Method() string {
	return "zip"
}

// Parse implements the Parser interface
func (p *ZIPParser) Parse(ctx context.Context, source string) ([]models.Row, error) {
	log.Printf("Starting to parse ZIP: %s", source)

	zipPath := source
	if isRemote(source) {
		log.Printf("Downloading ZIP file...")
		downloaded, err := p.downloadZIP(ctx, source)
		if err != nil {
			log.Printf("Error downloading ZIP: %v", err)
			return nil, NewParseError("download", err)
		}
		defer os.Remove(downloaded)
		log.Printf("Successfully downloaded ZIP to: %s", downloaded)
		zipPath = downloaded
	}

	rows, err := p.processZIPFile(ctx, zipPath)
	if err != nil {
		log.Printf("Error processing ZIP: %v", err)
		return nil, err
	}

	log.Printf("Successfully completed parsing %d rows", len(rows))
	return rows, nil
}

// downloadZIP downloads a ZIP file from the given URL into the temp dir
func (p *ZIPParser) downloadZIP(ctx context.Context, url string) (string, error) {
	body, err := openSource(ctx, p.client, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	f, err := os.CreateTemp(p.tempDir, "download_*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, body)
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	log.Printf("Successfully wrote %d bytes to file", written)

	return f.Name(), nil
}

// processZIPFile decodes the first CSV entry of the archive
func (p *ZIPParser) processZIPFile(ctx context.Context, zipPath string) ([]models.Row, error) {
	log.Printf("Opening ZIP file: %s", zipPath)
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, NewParseError("open", fmt.Errorf("failed to open ZIP: %w", err))
	}
	defer r.Close()

	log.Printf("Found %d files in ZIP archive", len(r.File))

	for _, f := range r.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			log.Printf("Skipping non-CSV file: %s", f.Name)
			continue
		}
		log.Printf("Processing CSV file: %s", filepath.Base(f.Name))

		rc, err := f.Open()
		if err != nil {
			return nil, NewParseError("process", fmt.Errorf("failed to open file in ZIP: %w", err))
		}
		defer rc.Close()

		return decodeRows(ctx, rc, p.strict)
	}

	return nil, NewParseError("process", fmt.Errorf("no CSV file in %s", filepath.Base(zipPath)))
}

// Cleanup removes temporary files
func (p *ZIPParser) Cleanup() error {
	return os.RemoveAll(p.tempDir)
}

// SetStrict toggles fail-fast numeric validation
func (p *ZIPParser) SetStrict(strict bool) {
	p.strict = strict
}
