// Package overlay paints annotations onto a 2D drawing surface.
package overlay

import (
	"image/color"

	"github.com/example/lightbox/internal/hittest"
)

// Surface is a minimal immediate-mode 2D canvas. Coordinates are screen
// pixels. Rectangles with negative width or height extend left or up.
type Surface interface {
	hittest.TextMeasurer

	Clear()
	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)
	// SetRoundJoins switches between round and miter joins/caps.
	SetRoundJoins(round bool)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(cx, cy, r, angle0, angle1 float64)
	ClosePath()
	Stroke()
	Fill()

	StrokeRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	// FillText draws text with its baseline starting at x, y.
	FillText(text string, x, y, size float64)
}
