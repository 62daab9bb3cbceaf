//go:build js && wasm

// Package jscanvas implements overlay.Surface on a browser
// CanvasRenderingContext2D.
package jscanvas

import (
	"fmt"
	"image/color"
	"syscall/js"

	"github.com/example/lightbox/internal/overlay"
	"github.com/example/lightbox/internal/palette"
)

// Surface forwards drawing calls to a 2D context.
type Surface struct {
	canvas js.Value
	ctx    js.Value
}

var _ overlay.Surface = (*Surface)(nil)

// New wraps canvas, which must be an HTMLCanvasElement.
func New(canvas js.Value) (*Surface, error) {
	if canvas.IsUndefined() || canvas.IsNull() {
		return nil, fmt.Errorf("canvas element missing")
	}
	ctx := canvas.Call("getContext", "2d")
	if ctx.IsNull() {
		return nil, fmt.Errorf("2d context unavailable")
	}
	return &Surface{canvas: canvas, ctx: ctx}, nil
}

// Canvas returns the wrapped element.
func (s *Surface) Canvas() js.Value { return s.canvas }

// Size reports the canvas size in pixels.
func (s *Surface) Size() (int, int) {
	return s.canvas.Get("width").Int(), s.canvas.Get("height").Int()
}

func css(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return palette.Hex(color.RGBA{n.R, n.G, n.B, 0xff})
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", n.R, n.G, n.B, float64(n.A)/0xff)
}

func font(size float64) string { return fmt.Sprintf("%gpx sans-serif", size) }

func (s *Surface) Clear() {
	w, h := s.Size()
	s.ctx.Call("clearRect", 0, 0, w, h)
}

func (s *Surface) SetStrokeColor(c color.Color) { s.ctx.Set("strokeStyle", css(c)) }
func (s *Surface) SetFillColor(c color.Color)   { s.ctx.Set("fillStyle", css(c)) }
func (s *Surface) SetLineWidth(w float64)       { s.ctx.Set("lineWidth", w) }

func (s *Surface) SetRoundJoins(round bool) {
	if round {
		s.ctx.Set("lineCap", "round")
		s.ctx.Set("lineJoin", "round")
		return
	}
	s.ctx.Set("lineCap", "butt")
	s.ctx.Set("lineJoin", "miter")
}

func (s *Surface) BeginPath()          { s.ctx.Call("beginPath") }
func (s *Surface) MoveTo(x, y float64) { s.ctx.Call("moveTo", x, y) }
func (s *Surface) LineTo(x, y float64) { s.ctx.Call("lineTo", x, y) }
func (s *Surface) ClosePath()          { s.ctx.Call("closePath") }
func (s *Surface) Stroke()             { s.ctx.Call("stroke") }
func (s *Surface) Fill()               { s.ctx.Call("fill") }

func (s *Surface) Arc(cx, cy, r, a0, a1 float64) {
	s.ctx.Call("arc", cx, cy, r, a0, a1)
}

func (s *Surface) StrokeRect(x, y, w, h float64) { s.ctx.Call("strokeRect", x, y, w, h) }
func (s *Surface) FillRect(x, y, w, h float64)   { s.ctx.Call("fillRect", x, y, w, h) }

func (s *Surface) FillText(text string, x, y, size float64) {
	s.ctx.Set("font", font(size))
	s.ctx.Call("fillText", text, x, y)
}

func (s *Surface) MeasureText(text string, size float64) float64 {
	s.ctx.Set("font", font(size))
	return s.ctx.Call("measureText", text).Get("width").Float()
}
