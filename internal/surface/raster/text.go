package raster

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/lightbox/internal/surface"
)

func (s *Surface) MeasureText(text string, size float64) float64 {
	return surface.MeasureText(text, size)
}

func (s *Surface) FillText(text string, x, y, size float64) {
	px, py := s.at(x, y)
	d := &font.Drawer{
		Dst:  clipped{s.dst, s.clip},
		Src:  image.NewUniform(s.fill),
		Face: surface.Face(size),
		Dot:  fixed.P(px, py),
	}
	d.DrawString(text)
}

// clipped limits a font.Drawer to the surface clip.
type clipped struct {
	*image.RGBA
	clip image.Rectangle
}

func (c clipped) Bounds() image.Rectangle { return c.clip }
