// Package freehand records pointer traces as polyline paths.
package freehand

import (
	"github.com/example/lightbox/internal/overlay"
	"github.com/example/lightbox/internal/palette"
	"github.com/example/lightbox/internal/typeid"
	"github.com/example/lightbox/internal/viewport"
)

const (
	DefaultColor = palette.Default
	DefaultWidth = 3.0
)

// Path is a finished trace in image coordinates. Width is in screen pixels.
type Path struct {
	ID     string           `json:"id"`
	Points []viewport.Point `json:"points"`
	Color  string           `json:"color"`
	Width  float64          `json:"width"`
}

// Engine collects points between press and release.
type Engine struct {
	ReadOnly bool
	Color    string
	Width    float64
	// OnComplete receives each finished path with at least two points.
	OnComplete func(Path)
	// NewID overrides id generation.
	NewID func() string

	current *Path // screen coordinates while tracing
}

// New returns an engine using the default colour and width.
func New() *Engine {
	return &Engine{Color: DefaultColor, Width: DefaultWidth}
}

// Tracing reports whether a path is in progress.
func (e *Engine) Tracing() bool { return e.current != nil }

// Current returns a copy of the in-progress path in screen coordinates.
func (e *Engine) Current() (Path, bool) {
	if e.current == nil {
		return Path{}, false
	}
	p := *e.current
	p.Points = append([]viewport.Point(nil), e.current.Points...)
	return p, true
}

// PointerDown starts a path at screen point p.
func (e *Engine) PointerDown(p viewport.Point) {
	if e.ReadOnly {
		return
	}
	id := ""
	if e.NewID != nil {
		id = e.NewID()
	} else {
		id = typeid.NewDrawingID()
	}
	color, width := e.Color, e.Width
	if color == "" {
		color = DefaultColor
	}
	if width <= 0 {
		width = DefaultWidth
	}
	e.current = &Path{ID: id, Points: []viewport.Point{p}, Color: color, Width: width}
}

// PointerMove extends the path. It reports whether a redraw is needed.
func (e *Engine) PointerMove(p viewport.Point) bool {
	if e.ReadOnly || e.current == nil {
		return false
	}
	e.current.Points = append(e.current.Points, p)
	return true
}

// PointerUp finishes the path, converting it to image space with t.
// Single-point paths are dropped.
func (e *Engine) PointerUp(t viewport.Transform) {
	cur := e.current
	e.current = nil
	if e.ReadOnly || cur == nil || len(cur.Points) < 2 {
		return
	}
	pts := make([]viewport.Point, len(cur.Points))
	for i, p := range cur.Points {
		pts[i] = t.ToImage(p)
	}
	cur.Points = pts
	if e.OnComplete != nil {
		e.OnComplete(*cur)
	}
}

// PointerLeave behaves like PointerUp.
func (e *Engine) PointerLeave(t viewport.Transform) { e.PointerUp(t) }

// Render clears s, then draws the stored paths and the trace in progress.
func (e *Engine) Render(s overlay.Surface, t viewport.Transform, paths []Path) {
	if s == nil {
		return
	}
	s.Clear()
	e.Draw(s, t, paths)
}

// Draw paints over the existing contents of s.
func (e *Engine) Draw(s overlay.Surface, t viewport.Transform, paths []Path) {
	DrawPaths(s, t, paths)
	if e.current != nil {
		stroke(s, *e.current, viewport.Identity())
	}
}

// DrawPaths paints finished paths under transform t.
func DrawPaths(s overlay.Surface, t viewport.Transform, paths []Path) {
	if s == nil {
		return
	}
	for _, p := range paths {
		if len(p.Points) < 2 {
			continue
		}
		stroke(s, p, t)
	}
}

func stroke(s overlay.Surface, p Path, t viewport.Transform) {
	if len(p.Points) == 0 {
		return
	}
	s.SetStrokeColor(palette.RGBA(p.Color))
	s.SetLineWidth(p.Width)
	s.SetRoundJoins(true)
	s.BeginPath()
	first := t.ToScreen(p.Points[0])
	s.MoveTo(first.X, first.Y)
	for _, pt := range p.Points[1:] {
		sp := t.ToScreen(pt)
		s.LineTo(sp.X, sp.Y)
	}
	s.Stroke()
	s.SetRoundJoins(false)
}
