package export

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow placed behind a rendered image.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadow suits screenshots at their natural size.
func DefaultShadow() ShadowOptions {
	return ShadowOptions{
		Radius:  16,
		Offset:  image.Pt(10, 10),
		Opacity: 0.5,
	}
}

// Shadow draws img over a blurred silhouette of its alpha channel. The canvas
// grows to hold the shadow and has a zero origin; the returned point is where
// the top-left corner of img landed.
func Shadow(img image.Image, o ShadowOptions) (*image.NRGBA, image.Point) {
	if img == nil {
		return nil, image.Point{}
	}
	b := img.Bounds()
	if b.Empty() || o.Opacity <= 0 {
		return imaging.Clone(img), image.Point{}
	}
	opacity := min(o.Opacity, 1)
	r := max(o.Radius, 0)

	w, h := b.Dx(), b.Dy()
	sil := image.NewNRGBA(image.Rect(0, 0, w+2*r, h+2*r))
	tint := image.NewUniform(color.NRGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(sil, image.Rect(r, r, r+w, r+h), tint, image.Point{}, img, b.Min, draw.Src)
	blurred := imaging.Blur(sil, float64(r)/2)

	shadowRect := sil.Bounds().Add(image.Pt(-r, -r)).Add(o.Offset)
	canvas := image.Rect(0, 0, w, h).Union(shadowRect)
	shift := canvas.Min.Mul(-1)

	dst := image.NewNRGBA(canvas.Sub(canvas.Min))
	draw.Draw(dst, shadowRect.Add(shift), blurred, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(0, 0, w, h).Add(shift), img, b.Min, draw.Over)
	return dst, shift
}
