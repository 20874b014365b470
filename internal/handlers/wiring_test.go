package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"datajournal/internal/parser"
	"datajournal/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredHandler(t *testing.T) *ChartHandler {
	t.Helper()
	store, err := storage.NewPocketBaseStore(t.TempDir(), "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	manager, err := parser.NewParserManager(false)
	require.NoError(t, err)
	t.Cleanup(manager.Cleanup)

	h := NewChartHandler(store, manager, "csv", filepath.Join("testdata", "data.csv"))
	require.NoError(t, h.Load(context.Background()))
	return h
}

func TestLoadThroughPocketBase(t *testing.T) {
	h := newStoredHandler(t)
	mux := http.NewServeMux()
	h.Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chart.svg", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, 3, strings.Count(rec.Body.String(), "<circle "))
	assert.Contains(t, rec.Body.String(), "Ohio&lt;br&gt;In Poverty (%): 14.2")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rows?abbr=ut", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var row map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, "Utah", row["state"])

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["rows"])
}
