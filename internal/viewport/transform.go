// Package viewport maps between image space and screen space.
//
// Annotations and drawings are stored in image coordinates so they stay
// attached to the same anatomy at any zoom or pan; pointer input and
// rendering happen in screen coordinates.
package viewport

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a 2D coordinate. Whether it is in image or screen space depends
// on where it came from.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// R2 converts p for use with r2 geometry.
func (p Point) R2() r2.Point { return r2.Point{X: p.X, Y: p.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Transform is the uniform scale plus translation applied to the image.
type Transform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// Identity returns the transform with scale 1 and no offset.
func Identity() Transform { return Transform{Scale: 1} }

// ToScreen maps an image-space point to screen space.
func (t Transform) ToScreen(p Point) Point {
	return Point{X: p.X*t.Scale + t.OffsetX, Y: p.Y*t.Scale + t.OffsetY}
}

// ToImage maps a screen-space point to image space. A zero scale yields
// non-finite coordinates; callers that care should check Valid first.
func (t Transform) ToImage(p Point) Point {
	return Point{X: (p.X - t.OffsetX) / t.Scale, Y: (p.Y - t.OffsetY) / t.Scale}
}

// Valid reports whether t can be inverted.
func (t Transform) Valid() bool {
	return t.Scale > 0 && !math.IsInf(t.Scale, 0) &&
		!math.IsNaN(t.OffsetX) && !math.IsInf(t.OffsetX, 0) &&
		!math.IsNaN(t.OffsetY) && !math.IsInf(t.OffsetY, 0)
}
