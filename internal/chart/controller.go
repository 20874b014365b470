package chart

import (
	"fmt"
	"log"
	"sync"
	"time"

	"datajournal/internal/models"
	"datajournal/internal/scale"
)

// Controller owns the dataset, the axis selection, both scales and every
// visual element they position. All transitions happen under its lock.
type Controller struct {
	mu sync.Mutex

	rows   []models.Row
	layout Layout
	now    func() time.Time

	sel       models.Selection
	xScale    scale.Linear
	yScale    scale.Linear
	xAxis     *AxisHandle
	yAxis     *AxisHandle
	markers   []Marker
	labels    []Label
	xControls []Control
	yControls []Control
}

// Option configures a Controller
type Option func(*Controller)

// WithClock overrides the time source used to stamp transitions
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLayout overrides the default canvas
func WithLayout(l Layout) Option {
	return func(c *Controller) {
		c.layout = l
	}
}

// NewController builds the initial chart for rows with the default
// selection. Nothing is animated on first draw.
func NewController(rows []models.Row, opts ...Option) (*Controller, error) {
	c := &Controller{
		rows:   append([]models.Row(nil), rows...),
		layout: DefaultLayout(),
		now:    time.Now,
		sel:    models.DefaultSelection(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	c.xScale, err = scale.NewX(c.rows, c.sel.X, c.layout.PlotWidth())
	if err != nil {
		return nil, fmt.Errorf("failed to build x scale: %w", err)
	}
	c.yScale, err = scale.NewY(c.rows, c.sel.Y, c.layout.PlotHeight())
	if err != nil {
		return nil, fmt.Errorf("failed to build y scale: %w", err)
	}

	now := c.now()
	c.xAxis = RenderAxis(OrientBottom, c.xScale, nil, now)
	c.yAxis = RenderAxis(OrientLeft, c.yScale, nil, now)
	c.markers = NewMarkers(c.rows, c.xScale, c.sel.X, c.yScale, c.sel.Y)
	c.labels = NewLabels(c.rows, c.xScale, c.sel.X, c.yScale, c.sel.Y)
	c.markers = BindTooltips(c.markers, c.sel)
	c.xControls = NewControls(models.AxisX, c.sel.X, c.layout)
	c.yControls = NewControls(models.AxisY, c.sel.Y, c.layout)

	log.Printf("Chart ready with %d rows (x=%s, y=%s)", len(c.rows), c.sel.X, c.sel.Y)
	return c, nil
}

// Select handles a click on an axis label control. Clicking the label that
// is already active changes nothing and reports false.
func (c *Controller) Select(axis models.Axis, field models.Field) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := models.ValidateField(axis, field); err != nil {
		return false, err
	}
	if c.sel.Chosen(axis) == field {
		return false, nil
	}

	next, err := c.sel.With(axis, field)
	if err != nil {
		return false, err
	}
	rebuilt, err := scale.For(axis, c.rows, field, c.layout.AxisLength(axis == models.AxisX))
	if err != nil {
		return false, fmt.Errorf("failed to rebuild %s scale: %w", axis, err)
	}

	now := c.now()
	c.sel = next
	if axis == models.AxisX {
		c.xScale = rebuilt
		c.xAxis = RenderAxis(OrientBottom, c.xScale, c.xAxis, now)
		c.xControls = Restyle(c.xControls, field)
	} else {
		c.yScale = rebuilt
		c.yAxis = RenderAxis(OrientLeft, c.yScale, c.yAxis, now)
		c.yControls = Restyle(c.yControls, field)
	}
	c.markers = RenderMarkers(c.markers, c.xScale, c.sel.X, c.yScale, c.sel.Y, now)
	c.labels = RenderLabels(c.labels, c.xScale, c.sel.X, c.yScale, c.sel.Y, now)
	c.markers = BindTooltips(c.markers, c.sel)

	log.Printf("Selection changed: %s-axis now %s", axis, field)
	return true, nil
}

// Selection returns the fields currently driving the axes
func (c *Controller) Selection() models.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}

// Rows returns a copy of the dataset
func (c *Controller) Rows() []models.Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Row(nil), c.rows...)
}

// View is an immutable snapshot of everything needed to draw the chart
type View struct {
	Layout    Layout
	Selection models.Selection
	XScale    scale.Linear
	YScale    scale.Linear
	XAxis     AxisHandle
	YAxis     AxisHandle
	Markers   []Marker
	Labels    []Label
	XControls []Control
	YControls []Control
	Now       time.Time
}

// View snapshots the chart at the current time
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Layout:    c.layout,
		Selection: c.sel,
		XScale:    c.xScale,
		YScale:    c.yScale,
		XAxis:     c.xAxis.Clone(),
		YAxis:     c.yAxis.Clone(),
		Markers:   append([]Marker(nil), c.markers...),
		Labels:    append([]Label(nil), c.labels...),
		XControls: append([]Control(nil), c.xControls...),
		YControls: append([]Control(nil), c.yControls...),
		Now:       c.now(),
	}
}

// Controls returns the label controls of both axes, X first
func (v View) Controls() []Control {
	return append(append([]Control(nil), v.XControls...), v.YControls...)
}
