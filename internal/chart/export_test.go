package chart

import (
	"bytes"
	"math"
	"testing"

	"datajournal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportPNG(t *testing.T) {
	c, _ := newTestController(t, testRows())
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, c.View(), ExportPNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestExportSVG(t *testing.T) {
	c, _ := newTestController(t, testRows())
	_, err := c.Select(models.AxisY, models.FieldSmokes)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, c.View(), ExportSVG))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "</svg>")
	assert.Equal(t, "image/svg+xml", ExportSVG.ContentType())
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	c, _ := newTestController(t, testRows())
	var buf bytes.Buffer
	assert.Error(t, Export(&buf, c.View(), ExportFormat("gif")))
}

func TestExportNeedsPlottableRows(t *testing.T) {
	rows := []models.Row{{State: "Nowhere", Abbr: "NW", Poverty: math.NaN(), Healthcare: 3}}
	c, _ := newTestController(t, rows)
	var buf bytes.Buffer
	assert.Error(t, Export(&buf, c.View(), ExportPNG))
}
