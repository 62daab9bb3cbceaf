// Package vector implements overlay.Surface with fogleman/gg for
// anti-aliased output such as exported images.
package vector

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/example/lightbox/internal/overlay"
	"github.com/example/lightbox/internal/surface"
)

// Surface wraps a gg.Context. Paths persist until BeginPath, matching the
// 2D canvas model. StrokeRect and FillRect discard the open path.
type Surface struct {
	dc     *gg.Context
	stroke color.Color
	fill   color.Color
	size   float64
}

var _ overlay.Surface = (*Surface)(nil)

// New returns a transparent surface of the given size.
func New(w, h int) *Surface {
	return wrap(gg.NewContext(w, h))
}

// ForImage returns a surface that draws over a copy of img.
func ForImage(img image.Image) *Surface {
	return wrap(gg.NewContextForImage(img))
}

// ForRGBA draws directly into img.
func ForRGBA(img *image.RGBA) *Surface {
	return wrap(gg.NewContextForRGBA(img))
}

func wrap(dc *gg.Context) *Surface {
	return &Surface{dc: dc, stroke: color.Black, fill: color.Black}
}

// Image returns the backing image.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// SavePNG writes the surface to path.
func (s *Surface) SavePNG(path string) error { return s.dc.SavePNG(path) }

func (s *Surface) Clear() {
	s.dc.SetColor(color.Transparent)
	s.dc.Clear()
}

func (s *Surface) SetStrokeColor(c color.Color) { s.stroke = c }
func (s *Surface) SetFillColor(c color.Color)   { s.fill = c }
func (s *Surface) SetLineWidth(w float64)       { s.dc.SetLineWidth(w) }

func (s *Surface) SetRoundJoins(round bool) {
	if round {
		s.dc.SetLineCap(gg.LineCapRound)
		s.dc.SetLineJoin(gg.LineJoinRound)
		return
	}
	s.dc.SetLineCap(gg.LineCapButt)
	s.dc.SetLineJoin(gg.LineJoinBevel)
}

func (s *Surface) BeginPath()          { s.dc.ClearPath() }
func (s *Surface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }
func (s *Surface) LineTo(x, y float64) { s.dc.LineTo(x, y) }
func (s *Surface) ClosePath()          { s.dc.ClosePath() }

func (s *Surface) Arc(cx, cy, r, a0, a1 float64) {
	s.dc.DrawArc(cx, cy, r, a0, a1)
}

func (s *Surface) Stroke() {
	s.dc.SetColor(s.stroke)
	s.dc.StrokePreserve()
}

func (s *Surface) Fill() {
	s.dc.SetColor(s.fill)
	s.dc.FillPreserve()
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	s.dc.ClearPath()
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetColor(s.stroke)
	s.dc.Stroke()
}

func (s *Surface) FillRect(x, y, w, h float64) {
	s.dc.ClearPath()
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetColor(s.fill)
	s.dc.Fill()
}

func (s *Surface) MeasureText(text string, size float64) float64 {
	return surface.MeasureText(text, size)
}

func (s *Surface) FillText(text string, x, y, size float64) {
	if size != s.size {
		s.dc.SetFontFace(surface.Face(size))
		s.size = size
	}
	s.dc.SetColor(s.fill)
	s.dc.DrawString(text, x, y)
}
