package handlers

import (
	"bytes"
	"context"
	"datajournal/internal/chart"
	"datajournal/internal/models"
	"datajournal/internal/storage"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"
)

// RowStore persists the parsed dataset
type RowStore interface {
	ReplaceRows(rows []models.Row) error
	GetAllRows() ([]models.Row, error)
	FindRowByAbbr(abbr string) (*models.Row, error)
}

// Loader parses a dataset from a path or URL
type Loader interface {
	ParseSource(ctx context.Context, method, source string) ([]models.Row, error)
}

var errNotLoaded = errors.New("chart not loaded")

type ChartHandler struct {
	store  RowStore
	loader Loader
	method string
	source string
	opts   []chart.Option

	mu         sync.RWMutex
	controller *chart.Controller
}

func NewChartHandler(store RowStore, loader Loader, method, source string, opts ...chart.Option) *ChartHandler {
	return &ChartHandler{
		store:  store,
		loader: loader,
		method: method,
		source: source,
		opts:   opts,
	}
}

// Load parses the source, stores the rows and builds a fresh chart. On
// failure the previous chart, if any, is kept.
func (h *ChartHandler) Load(ctx context.Context) error {
	log.Printf("Loading dataset from %s (method: %s)", h.source, h.method)

	rows, err := h.loader.ParseSource(ctx, h.method, h.source)
	if err != nil {
		return fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := h.store.ReplaceRows(rows); err != nil {
		return fmt.Errorf("failed to store dataset: %w", err)
	}
	stored, err := h.store.GetAllRows()
	if err != nil {
		return fmt.Errorf("failed to read back dataset: %w", err)
	}

	controller, err := chart.NewController(stored, h.opts...)
	if err != nil {
		return fmt.Errorf("failed to build chart: %w", err)
	}

	h.mu.Lock()
	h.controller = controller
	h.mu.Unlock()

	log.Printf("Successfully loaded %d rows", len(stored))
	return nil
}

func (h *ChartHandler) current() (*chart.Controller, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.controller == nil {
		return nil, errNotLoaded
	}
	return h.controller, nil
}

func (h *ChartHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	layout := chart.DefaultLayout()
	data := pageData{
		Width:   int(layout.Width),
		Height:  int(layout.Height),
		TipTop:  chart.TooltipOffset[0],
		TipLeft: chart.TooltipOffset[1],
	}

	// a chart that failed to load is simply absent from the page
	if c, err := h.current(); err == nil {
		var buf bytes.Buffer
		v := c.View()
		if err := chart.WriteSVG(&buf, v); err != nil {
			log.Printf("Error rendering chart: %v", err)
			http.Error(w, "Error rendering chart", http.StatusInternalServerError)
			return
		}
		data.SVG = template.HTML(buf.String())
		data.Loaded = true
		data.XSelection = string(v.Selection.X)
		data.YSelection = string(v.Selection.Y)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("Error writing page: %v", err)
	}
}

func (h *ChartHandler) HandleChartSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c, err := h.current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeSVG(w, c.View())
}

func (h *ChartHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := chart.ExportFormat(r.PathValue("format"))
	if format != chart.ExportPNG && format != chart.ExportSVG {
		http.Error(w, fmt.Sprintf("Unsupported export format: %s", format), http.StatusBadRequest)
		return
	}

	c, err := h.current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := chart.Export(&buf, c.View(), format); err != nil {
		log.Printf("Error exporting chart: %v", err)
		http.Error(w, "Error exporting chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	io.Copy(w, &buf)
}

func (h *ChartHandler) HandleGetSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c, err := h.current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c.Selection())
}

type selectRequest struct {
	Value string `json:"value"`
}

func (h *ChartHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	axis, err := models.ParseAxis(r.PathValue("axis"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	c, err := h.current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	changed, err := c.Select(axis, models.Field(req.Value))
	if err != nil {
		if errors.Is(err, models.ErrInvalidField) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error changing selection: %v", err)
		http.Error(w, "Error changing selection", http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-Selection-Changed", strconv.FormatBool(changed))
	writeSVG(w, c.View())
}

// rowResponse mirrors models.Row with NaN values encoded as null
type rowResponse struct {
	State      string   `json:"state"`
	Abbr       string   `json:"abbr"`
	Poverty    *float64 `json:"poverty"`
	Age        *float64 `json:"age"`
	Income     *float64 `json:"income"`
	Healthcare *float64 `json:"healthcare"`
	Smokes     *float64 `json:"smokes"`
	Obesity    *float64 `json:"obesity"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func toRowResponse(r models.Row) rowResponse {
	return rowResponse{
		State:      r.State,
		Abbr:       r.Abbr,
		Poverty:    finite(r.Poverty),
		Age:        finite(r.Age),
		Income:     finite(r.Income),
		Healthcare: finite(r.Healthcare),
		Smokes:     finite(r.Smokes),
		Obesity:    finite(r.Obesity),
	}
}

func (h *ChartHandler) HandleRows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if abbr := r.URL.Query().Get("abbr"); abbr != "" {
		row, err := h.store.FindRowByAbbr(abbr)
		if errors.Is(err, storage.ErrRowNotFound) {
			http.Error(w, "Row not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error fetching row %s: %v", abbr, err)
			http.Error(w, "Error fetching row", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(toRowResponse(*row))
		return
	}

	rows, err := h.store.GetAllRows()
	if err != nil {
		log.Printf("Error fetching rows: %v", err)
		http.Error(w, "Error fetching rows", http.StatusInternalServerError)
		return
	}

	results := make([]rowResponse, len(rows))
	for i, row := range rows {
		results[i] = toRowResponse(row)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(results),
		"rows":  results,
	})
}

func (h *ChartHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.Load(r.Context()); err != nil {
		log.Printf("Error reloading dataset: %v", err)
		http.Error(w, fmt.Sprintf("Failed to reload dataset: %v", err), http.StatusInternalServerError)
		return
	}

	c, _ := h.current()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Dataset reloaded successfully",
		"rows":    len(c.Rows()),
	})
}

func writeSVG(w http.ResponseWriter, v chart.View) {
	var buf bytes.Buffer
	if err := chart.WriteSVG(&buf, v); err != nil {
		log.Printf("Error rendering chart: %v", err)
		http.Error(w, "Error rendering chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	io.Copy(w, &buf)
}

// Register wires the chart routes onto mux
func (h *ChartHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.HandleIndex)
	mux.HandleFunc("/api/chart.svg", h.HandleChartSVG)
	mux.HandleFunc("/api/export/{format}", h.HandleExport)
	mux.HandleFunc("/api/selection", h.HandleGetSelection)
	mux.HandleFunc("/api/selection/{axis}", h.HandleSelect)
	mux.HandleFunc("/api/rows", h.HandleRows)
	mux.HandleFunc("/api/reload", h.HandleReload)
}
