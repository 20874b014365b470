package parser

import (
	"archive/zip"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"datajournal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParserLocalFile(t *testing.T) {
	p := NewCSVParser()
	rows, err := p.Parse(context.Background(), filepath.Join("testdata", "data.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, models.Row{
		State: "Ohio", Abbr: "OH",
		Poverty: 14.2, Age: 39.3, Income: 49644,
		Healthcare: 12.8, Smokes: 21.6, Obesity: 30.9,
	}, rows[1])
	assert.Equal(t, "AL", rows[0].Abbr)
	assert.Equal(t, "UT", rows[2].Abbr)
}

func TestCSVParserPermissiveCoercion(t *testing.T) {
	p := NewCSVParser()
	rows, err := p.Parse(context.Background(), filepath.Join("testdata", "malformed.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.True(t, math.IsNaN(rows[1].Poverty), "non-numeric becomes NaN")
	assert.Equal(t, 0.0, rows[1].Income, "blank becomes zero")
	assert.Equal(t, 40.0, rows[1].Age)
}

func TestCSVParserStrict(t *testing.T) {
	p := NewCSVParser()
	p.SetStrict(true)
	_, err := p.Parse(context.Background(), filepath.Join("testdata", "malformed.csv"))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "row", perr.Stage)
	assert.ErrorIs(t, err, errNotNumeric)
	assert.Contains(t, err.Error(), "line 3")
}

func TestCSVParserShortRow(t *testing.T) {
	rows, err := NewCSVParser().Parse(context.Background(), filepath.Join("testdata", "ragged.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	utah := rows[1]
	assert.Equal(t, "UT", utah.Abbr)
	assert.Equal(t, 9.2, utah.Poverty)
	assert.Equal(t, 30.2, utah.Age)
	for _, v := range []float64{utah.Income, utah.Healthcare, utah.Smokes, utah.Obesity} {
		assert.True(t, math.IsNaN(v), "missing cell becomes NaN")
	}
}

func TestCSVParserShortRowStrict(t *testing.T) {
	p := NewCSVParser()
	p.SetStrict(true)
	_, err := p.Parse(context.Background(), filepath.Join("testdata", "ragged.csv"))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "row", perr.Stage)
	assert.ErrorIs(t, err, errNotNumeric)
	assert.Contains(t, err.Error(), "line 3")
}

func TestCSVParserMissingColumn(t *testing.T) {
	_, err := NewCSVParser().Parse(context.Background(), filepath.Join("testdata", "missing_column.csv"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "header", perr.Stage)
	assert.Contains(t, err.Error(), `"obesity"`)
}

func TestCSVParserMissingFile(t *testing.T) {
	_, err := NewCSVParser().Parse(context.Background(), filepath.Join("testdata", "nope.csv"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "open", perr.Stage)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCSVParserURL(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "data.csv"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/data/data.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write(data)
	}))
	defer srv.Close()

	rows, err := NewCSVParser().Parse(context.Background(), srv.URL+"/assets/data/data.csv")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = NewCSVParser().Parse(context.Background(), srv.URL+"/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 404")
}

func TestCSVParserCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCSVParser().Parse(ctx, filepath.Join("testdata", "data.csv"))
	assert.ErrorIs(t, err, context.Canceled)
}

func writeZIP(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestZIPParser(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "data.csv"))
	require.NoError(t, err)
	path := writeZIP(t, map[string]string{
		"README.txt":           "not data",
		"assets/data/data.csv": string(data),
	})

	p, err := NewZIPParser()
	require.NoError(t, err)
	defer p.Cleanup()

	rows, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alabama", rows[0].State)
}

func TestZIPParserDownload(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "data.csv"))
	require.NoError(t, err)
	zipped, err := os.ReadFile(writeZIP(t, map[string]string{"data.csv": string(data)}))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipped)
	}))
	defer srv.Close()

	p, err := NewZIPParser()
	require.NoError(t, err)
	defer p.Cleanup()

	rows, err := p.Parse(context.Background(), srv.URL+"/data.zip")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestZIPParserWithoutCSV(t *testing.T) {
	path := writeZIP(t, map[string]string{"notes.txt": "hello"})
	p, err := NewZIPParser()
	require.NoError(t, err)
	defer p.Cleanup()

	_, err = p.Parse(context.Background(), path)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "process", perr.Stage)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"14.2", 14.2},
		{" 38.6 ", 38.6},
		{"", 0},
		{"1e3", 1000},
		{"0x10", 16},
		{"-2.5", -2.5},
		{"Infinity", math.Inf(1)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseNumber(tt.in), tt.in)
	}
	for _, bad := range []string{"abc", "n/a", "inf", "1_000", "12%", "NaN"} {
		assert.True(t, math.IsNaN(parseNumber(bad)), bad)
	}
}

func TestParserManager(t *testing.T) {
	m, err := NewParserManager(false)
	require.NoError(t, err)
	defer m.Cleanup()

	assert.Equal(t, []string{"csv", "zip"}, m.Methods())

	rows, err := m.ParseSource(context.Background(), "csv", filepath.Join("testdata", "data.csv"))
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = m.ParseSource(context.Background(), "html", "x")
	assert.EqualError(t, err, "no parser found for method: html")
}

func TestParserManagerStrict(t *testing.T) {
	m, err := NewParserManager(true)
	require.NoError(t, err)
	defer m.Cleanup()

	_, err = m.ParseSource(context.Background(), "csv", filepath.Join("testdata", "malformed.csv"))
	assert.ErrorIs(t, err, errNotNumeric)
}
