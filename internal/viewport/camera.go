package viewport

import "math"

const (
	// MinScale and MaxScale bound interactive zoom.
	MinScale = 0.5
	MaxScale = 10.0
	// ZoomStep is the factor applied by ZoomIn and ZoomOut.
	ZoomStep = 1.25
)

// Controller is the surface a host exposes for driving the image transform.
type Controller interface {
	Reset()
	SetTransform(x, y, scale float64)
	State() Transform
}

// Camera is the default Controller. It clamps scale to [MinScale, MaxScale]
// and notifies OnChange after every modification.
type Camera struct {
	t       Transform
	initial Transform

	OnChange func(Transform)
}

var _ Controller = (*Camera)(nil)

// NewCamera returns a camera whose initial and current transform is t.
func NewCamera(t Transform) *Camera {
	if t.Scale == 0 {
		t.Scale = 1
	}
	t.Scale = clampScale(t.Scale)
	return &Camera{t: t, initial: t}
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	return math.Max(MinScale, math.Min(MaxScale, s))
}

func (c *Camera) changed() {
	if c.OnChange != nil {
		c.OnChange(c.t)
	}
}

// State returns the current transform.
func (c *Camera) State() Transform { return c.t }

// Reset restores the initial transform.
func (c *Camera) Reset() {
	c.t = c.initial
	c.changed()
}

// SetTransform replaces the current transform.
func (c *Camera) SetTransform(x, y, scale float64) {
	c.t = Transform{Scale: clampScale(scale), OffsetX: x, OffsetY: y}
	c.changed()
}

// PanBy moves the image by a screen-space delta.
func (c *Camera) PanBy(dx, dy float64) {
	c.t.OffsetX += dx
	c.t.OffsetY += dy
	c.changed()
}

// ZoomAt multiplies the scale by factor keeping the screen point anchor
// over the same image point.
func (c *Camera) ZoomAt(anchor Point, factor float64) {
	img := c.t.ToImage(anchor)
	s := clampScale(c.t.Scale * factor)
	c.t = Transform{
		Scale:   s,
		OffsetX: anchor.X - img.X*s,
		OffsetY: anchor.Y - img.Y*s,
	}
	c.changed()
}

// ZoomIn zooms one step around anchor.
func (c *Camera) ZoomIn(anchor Point) { c.ZoomAt(anchor, ZoomStep) }

// ZoomOut zooms out one step around anchor.
func (c *Camera) ZoomOut(anchor Point) { c.ZoomAt(anchor, 1/ZoomStep) }

// Center fits an image of the given size inside the view and centres it.
// The result becomes the transform Reset returns to.
func (c *Camera) Center(imageW, imageH, viewW, viewH float64) {
	s := 1.0
	if imageW > 0 && imageH > 0 && viewW > 0 && viewH > 0 {
		s = math.Min(1, math.Min(viewW/imageW, viewH/imageH))
	}
	s = clampScale(s)
	c.t = Transform{
		Scale:   s,
		OffsetX: (viewW - imageW*s) / 2,
		OffsetY: (viewH - imageH*s) / 2,
	}
	c.initial = c.t
	c.changed()
}
