// Package hittest decides which annotation lies under a screen point.
package hittest

import (
	"github.com/golang/geo/r2"

	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/viewport"
)

const (
	// ArrowTolerance is the maximum perpendicular distance, in screen
	// pixels, at which an arrow still counts as hit.
	ArrowTolerance = 5.0
	// FontSize is the text size at scale 1.
	FontSize = 14.0
)

// TextMeasurer reports the advance width of text rendered at size pixels.
type TextMeasurer interface {
	MeasureText(text string, size float64) float64
}

// TextBox returns the screen-space selection box of a label whose baseline
// starts at screen point at. Labels extend above the baseline.
func TextBox(at viewport.Point, width, scale float64) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: at.X - 2, Y: at.Y - FontSize*scale + 2},
		r2.Point{X: at.X + width + 4, Y: at.Y + 4},
	)
}

// Test returns the id of the topmost annotation containing p. Later
// annotations are painted on top, so the last match wins.
func Test(p viewport.Point, t viewport.Transform, list []annotation.Annotation, m TextMeasurer) (string, bool) {
	v := &visitor{p: p.R2(), t: t, m: m}
	var id string
	for _, a := range list {
		if a.Shape == nil {
			continue
		}
		v.hit = false
		a.Shape.Accept(v)
		if v.hit {
			id = a.ID
		}
	}
	return id, id != ""
}

type visitor struct {
	p   r2.Point
	t   viewport.Transform
	m   TextMeasurer
	hit bool
}

func (v *visitor) screen(p viewport.Point) r2.Point {
	return v.t.ToScreen(p).R2()
}

func (v *visitor) VisitText(s annotation.Text) {
	if s.Body == "" || v.m == nil {
		return
	}
	w := v.m.MeasureText(s.Body, FontSize*v.t.Scale)
	v.hit = TextBox(v.t.ToScreen(s.At), w, v.t.Scale).ContainsPoint(v.p)
}

func (v *visitor) VisitArrow(s annotation.Arrow) {
	a, b := v.screen(s.Start), v.screen(s.End)
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return
	}
	u := v.p.Sub(a).Dot(d) / l2
	if u < 0 || u > 1 {
		return
	}
	proj := a.Add(d.Mul(u))
	v.hit = v.p.Sub(proj).Norm() <= ArrowTolerance
}

func (v *visitor) VisitRectangle(s annotation.Rectangle) {
	if s.Width == 0 || s.Height == 0 {
		return
	}
	lo := v.screen(s.Min)
	hi := v.screen(viewport.Pt(s.Min.X+s.Width, s.Min.Y+s.Height))
	v.hit = r2.RectFromPoints(lo, hi).ContainsPoint(v.p)
}

func (v *visitor) VisitCircle(s annotation.Circle) {
	if s.Radius == 0 {
		return
	}
	c := v.screen(s.Center)
	v.hit = v.p.Sub(c).Norm() <= s.Radius*v.t.Scale
}
