// Package minimap projects the main view onto a thumbnail of the image and
// maps thumbnail clicks back to pan offsets.
package minimap

import (
	"math"

	"github.com/example/lightbox/internal/viewport"
)

const (
	DefaultWidth  = 150
	DefaultHeight = 150
)

// Rect is an axis-aligned rectangle in thumbnail pixels.
type Rect struct {
	X, Y, W, H float64
}

// Params describes the image, the thumbnail and the main view.
type Params struct {
	ImageW, ImageH       float64
	ThumbW, ThumbH       float64
	ViewportW, ViewportH float64
	Transform            viewport.Transform
}

// Layout is where the image and the visible region sit on the thumbnail.
type Layout struct {
	// MiniScale is thumbnail pixels per image pixel.
	MiniScale float64
	// Offset centres the scaled image inside the thumbnail.
	Offset viewport.Point
	// Image is the scaled image placement.
	Image Rect
	// Visible is the part of the image shown in the main view.
	Visible Rect
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// Compute returns the layout for p. A zero image dimension is treated as 1
// when deriving MiniScale.
func Compute(p Params) Layout {
	if p.ThumbW == 0 {
		p.ThumbW = DefaultWidth
	}
	if p.ThumbH == 0 {
		p.ThumbH = DefaultHeight
	}
	ms := math.Min(p.ThumbW/orOne(p.ImageW), p.ThumbH/orOne(p.ImageH))
	sw, sh := p.ImageW*ms, p.ImageH*ms
	off := viewport.Pt((p.ThumbW-sw)/2, (p.ThumbH-sh)/2)
	s := p.Transform.Scale
	return Layout{
		MiniScale: ms,
		Offset:    off,
		Image:     Rect{X: off.X, Y: off.Y, W: sw, H: sh},
		Visible: Rect{
			X: off.X + (-p.Transform.OffsetX/s)*ms,
			Y: off.Y + (-p.Transform.OffsetY/s)*ms,
			W: math.Min(p.ViewportW/s, p.ImageW) * ms,
			H: math.Min(p.ViewportH/s, p.ImageH) * ms,
		},
	}
}

// PanTo returns the offsets that centre the main view on the image point
// under thumbnail point local.
func (l Layout) PanTo(local viewport.Point, p Params) (float64, float64) {
	ix := (local.X - l.Offset.X) / l.MiniScale
	iy := (local.Y - l.Offset.Y) / l.MiniScale
	s := p.Transform.Scale
	return -(ix*s - p.ViewportW/2), -(iy*s - p.ViewportH/2)
}

// Dragger turns thumbnail presses and drags into position changes.
type Dragger struct {
	OnPositionChange func(x, y float64)

	dragging bool
}

// Dragging reports whether a drag is in progress.
func (d *Dragger) Dragging() bool { return d.dragging }

// PointerDown starts a drag and recentres immediately.
func (d *Dragger) PointerDown(local viewport.Point, p Params) {
	d.dragging = true
	d.emit(local, p)
}

// PointerMove recentres while dragging.
func (d *Dragger) PointerMove(local viewport.Point, p Params) {
	if d.dragging {
		d.emit(local, p)
	}
}

// PointerUp ends the drag.
func (d *Dragger) PointerUp() { d.dragging = false }

// PointerLeave ends the drag.
func (d *Dragger) PointerLeave() { d.dragging = false }

func (d *Dragger) emit(local viewport.Point, p Params) {
	if d.OnPositionChange == nil {
		return
	}
	l := Compute(p)
	if l.MiniScale == 0 || p.Transform.Scale == 0 {
		return
	}
	d.OnPositionChange(l.PanTo(local, p))
}
