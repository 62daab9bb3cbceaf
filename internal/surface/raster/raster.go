// Package raster implements overlay.Surface on an *image.RGBA using integer
// line and circle rasterisers for strokes and x/image/vector for fills.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/lightbox/internal/overlay"
)

type fpoint struct{ x, y float64 }

// Surface draws into the Clip rectangle of an RGBA image. Screen coordinate
// (0, 0) maps to Clip.Min.
type Surface struct {
	dst    *image.RGBA
	clip   image.Rectangle
	stroke color.Color
	fill   color.Color
	width  float64
	round  bool

	paths  [][]fpoint
	closed []bool
}

var _ overlay.Surface = (*Surface)(nil)

// New returns a surface covering all of dst.
func New(dst *image.RGBA) *Surface {
	return NewAt(dst, dst.Bounds())
}

// NewAt returns a surface whose origin is clip.Min and which never touches
// pixels outside clip.
func NewAt(dst *image.RGBA, clip image.Rectangle) *Surface {
	return &Surface{
		dst:    dst,
		clip:   clip.Intersect(dst.Bounds()),
		stroke: color.Black,
		fill:   color.Black,
		width:  1,
	}
}

// Bounds returns the drawable area in destination coordinates.
func (s *Surface) Bounds() image.Rectangle { return s.clip }

func (s *Surface) Clear() {
	draw.Draw(s.dst, s.clip, image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) SetStrokeColor(c color.Color) { s.stroke = c }
func (s *Surface) SetFillColor(c color.Color)   { s.fill = c }
func (s *Surface) SetLineWidth(w float64)       { s.width = w }
func (s *Surface) SetRoundJoins(round bool)     { s.round = round }

func (s *Surface) BeginPath() {
	s.paths = s.paths[:0]
	s.closed = s.closed[:0]
}

func (s *Surface) MoveTo(x, y float64) {
	s.paths = append(s.paths, []fpoint{{x, y}})
	s.closed = append(s.closed, false)
}

func (s *Surface) LineTo(x, y float64) {
	if len(s.paths) == 0 {
		s.MoveTo(x, y)
		return
	}
	i := len(s.paths) - 1
	s.paths[i] = append(s.paths[i], fpoint{x, y})
}

// Arc appends a circular arc, starting a new subpath at its first point
// when none is open.
func (s *Surface) Arc(cx, cy, r, a0, a1 float64) {
	steps := int(math.Ceil(math.Abs(a1-a0) * r / 2))
	if steps < 16 {
		steps = 16
	}
	if steps > 720 {
		steps = 720
	}
	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(steps)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if i == 0 && len(s.paths) == 0 {
			s.MoveTo(x, y)
			continue
		}
		s.LineTo(x, y)
	}
}

func (s *Surface) ClosePath() {
	if len(s.paths) == 0 {
		return
	}
	s.closed[len(s.closed)-1] = true
}

func (s *Surface) thickness() int {
	t := int(math.Round(s.width))
	if t < 1 {
		t = 1
	}
	return t
}

func (s *Surface) at(x, y float64) (int, int) {
	return s.clip.Min.X + int(math.Round(x)), s.clip.Min.Y + int(math.Round(y))
}

func (s *Surface) Stroke() {
	thick := s.thickness()
	for i, sub := range s.paths {
		pts := sub
		if s.closed[i] && len(sub) > 1 {
			pts = append(pts[:len(pts):len(pts)], sub[0])
		}
		for j := 1; j < len(pts); j++ {
			x0, y0 := s.at(pts[j-1].x, pts[j-1].y)
			x1, y1 := s.at(pts[j].x, pts[j].y)
			s.line(x0, y0, x1, y1, s.stroke, thick)
		}
		if s.round && thick > 2 {
			for _, p := range pts {
				x, y := s.at(p.x, p.y)
				s.disc(x, y, thick/2, s.stroke)
			}
		}
	}
}

func (s *Surface) Fill() {
	w, h := s.clip.Dx(), s.clip.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	z := vector.NewRasterizer(w, h)
	for _, sub := range s.paths {
		if len(sub) < 3 {
			continue
		}
		z.MoveTo(float32(sub[0].x), float32(sub[0].y))
		for _, p := range sub[1:] {
			z.LineTo(float32(p.x), float32(p.y))
		}
		z.ClosePath()
	}
	z.DrawOp = draw.Over
	z.Draw(s.dst, s.clip, image.NewUniform(s.fill), image.Point{})
}

func normRect(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return x, y, w, h
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	x, y, w, h = normRect(x, y, w, h)
	x0, y0 := s.at(x, y)
	x1, y1 := s.at(x+w, y+h)
	thick := s.thickness()
	s.line(x0, y0, x1, y0, s.stroke, thick)
	s.line(x1, y0, x1, y1, s.stroke, thick)
	s.line(x1, y1, x0, y1, s.stroke, thick)
	s.line(x0, y1, x0, y0, s.stroke, thick)
}

func (s *Surface) FillRect(x, y, w, h float64) {
	x, y, w, h = normRect(x, y, w, h)
	x0, y0 := s.at(x, y)
	x1, y1 := s.at(x+w, y+h)
	r := image.Rect(x0, y0, x1, y1).Intersect(s.clip)
	draw.Draw(s.dst, r, image.NewUniform(s.fill), image.Point{}, draw.Over)
}

func (s *Surface) setThickPixel(x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(s.clip) {
				s.dst.Set(px, py, col)
			}
		}
	}
}

func (s *Surface) line(x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		s.setThickPixel(x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (s *Surface) disc(cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				px := cx + dx
				py := cy + dy
				if image.Pt(px, py).In(s.clip) {
					s.dst.Set(px, py, col)
				}
			}
		}
	}
}

// Checkerboard fills rect of dst with alternating squares of the given size.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}
