package minimap

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"github.com/example/lightbox/internal/surface/raster"
)

// Style colours the minimap.
type Style struct {
	Background color.Color
	Border     color.Color
	Stroke     color.Color
	Fill       color.Color
}

// DefaultStyle matches the translucent blue viewport marker.
func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{0xf3, 0xf4, 0xf6, 0xff},
		Border:     color.RGBA{0xd1, 0xd5, 0xdb, 0xff},
		Stroke:     color.NRGBA{0, 123, 255, 204},
		Fill:       color.NRGBA{0, 123, 255, 26},
	}
}

// Thumbnail scales img to the size it occupies in l.
func Thumbnail(img image.Image, l Layout) *image.NRGBA {
	w := int(math.Round(l.Image.W))
	h := int(math.Round(l.Image.H))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// Render paints the minimap into the rectangle of dst starting at origin and
// sized thumbW x thumbH: background, thumbnail, then the visible region.
func Render(dst *image.RGBA, origin image.Point, thumb image.Image, l Layout, thumbW, thumbH int, st Style) {
	frame := image.Rect(0, 0, thumbW, thumbH).Add(origin)
	draw.Draw(dst, frame, image.NewUniform(st.Background), image.Point{}, draw.Src)
	if thumb != nil {
		at := image.Pt(int(math.Round(l.Image.X)), int(math.Round(l.Image.Y))).Add(origin)
		draw.Draw(dst, thumb.Bounds().Sub(thumb.Bounds().Min).Add(at).Intersect(frame), thumb, thumb.Bounds().Min, draw.Over)
	}
	s := raster.NewAt(dst, frame)
	s.SetLineWidth(2)
	s.SetStrokeColor(st.Stroke)
	s.StrokeRect(l.Visible.X, l.Visible.Y, l.Visible.W, l.Visible.H)
	s.SetFillColor(st.Fill)
	s.FillRect(l.Visible.X, l.Visible.Y, l.Visible.W, l.Visible.H)

	s.SetLineWidth(1)
	s.SetStrokeColor(st.Border)
	s.StrokeRect(0, 0, float64(thumbW-1), float64(thumbH-1))
}
