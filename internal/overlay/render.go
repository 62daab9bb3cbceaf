package overlay

import (
	"math"

	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/hittest"
	"github.com/example/lightbox/internal/palette"
	"github.com/example/lightbox/internal/viewport"
)

const (
	lineWidth       = 2.0
	activeLineWidth = 3.0
	handleSize      = 10.0
	arrowHeadSize   = 10.0
)

// Draft is the shape being dragged out. Start and Current are screen
// coordinates.
type Draft struct {
	Kind    annotation.Kind
	Start   viewport.Point
	Current viewport.Point
	Color   string
}

// Scene is everything one frame of the annotation layer depends on.
type Scene struct {
	Transform   viewport.Transform
	Annotations []annotation.Annotation
	ActiveID    string
	Draft       *Draft
}

// Render clears s and draws sc. A nil surface is ignored.
func Render(s Surface, sc Scene) {
	if s == nil {
		return
	}
	s.Clear()
	Draw(s, sc)
}

// Draw paints sc over whatever s already holds.
func Draw(s Surface, sc Scene) {
	if s == nil {
		return
	}
	for _, a := range sc.Annotations {
		if a.Shape == nil {
			continue
		}
		active := a.ID != "" && a.ID == sc.ActiveID
		c := palette.RGBA(a.Color)
		s.SetStrokeColor(c)
		s.SetFillColor(c)
		if active {
			s.SetLineWidth(activeLineWidth)
		} else {
			s.SetLineWidth(lineWidth)
		}
		a.Shape.Accept(&painter{s: s, t: sc.Transform, active: active})
	}
	if sc.Draft != nil {
		drawDraft(s, *sc.Draft)
	}
}

// ArrowHead returns the two base corners of an arrowhead whose tip is at
// tip and which points along angle.
func ArrowHead(tip viewport.Point, angle, size float64) (left, right viewport.Point) {
	left = viewport.Pt(tip.X-size*math.Cos(angle-math.Pi/6), tip.Y-size*math.Sin(angle-math.Pi/6))
	right = viewport.Pt(tip.X-size*math.Cos(angle+math.Pi/6), tip.Y-size*math.Sin(angle+math.Pi/6))
	return left, right
}

func drawArrow(s Surface, from, to viewport.Point, angle, size float64) {
	s.BeginPath()
	s.MoveTo(from.X, from.Y)
	s.LineTo(to.X, to.Y)
	s.Stroke()

	l, r := ArrowHead(to, angle, size)
	s.BeginPath()
	s.MoveTo(to.X, to.Y)
	s.LineTo(l.X, l.Y)
	s.LineTo(r.X, r.Y)
	s.ClosePath()
	s.Fill()
}

func handles(s Surface, pts ...viewport.Point) {
	for _, p := range pts {
		s.FillRect(p.X-handleSize/2, p.Y-handleSize/2, handleSize, handleSize)
	}
}

type painter struct {
	s      Surface
	t      viewport.Transform
	active bool
}

func (p *painter) VisitText(a annotation.Text) {
	if a.Body == "" {
		return
	}
	size := hittest.FontSize * p.t.Scale
	at := p.t.ToScreen(a.At)
	p.s.FillText(a.Body, at.X, at.Y, size)
	if p.active {
		w := p.s.MeasureText(a.Body, size)
		p.s.StrokeRect(at.X-2, at.Y-size+2, w+4, size+4)
	}
}

func (p *painter) VisitArrow(a annotation.Arrow) {
	angle := math.Atan2(a.End.Y-a.Start.Y, a.End.X-a.Start.X)
	drawArrow(p.s, p.t.ToScreen(a.Start), p.t.ToScreen(a.End), angle, arrowHeadSize*p.t.Scale)
}

func (p *painter) VisitRectangle(a annotation.Rectangle) {
	if a.Width == 0 || a.Height == 0 {
		return
	}
	tl := p.t.ToScreen(a.Min)
	p.s.StrokeRect(tl.X, tl.Y, a.Width*p.t.Scale, a.Height*p.t.Scale)
	if p.active {
		x0, y0 := a.Min.X, a.Min.Y
		x1, y1 := x0+a.Width, y0+a.Height
		handles(p.s,
			p.t.ToScreen(viewport.Pt(x0, y0)),
			p.t.ToScreen(viewport.Pt(x1, y0)),
			p.t.ToScreen(viewport.Pt(x1, y1)),
			p.t.ToScreen(viewport.Pt(x0, y1)),
		)
	}
}

func (p *painter) VisitCircle(a annotation.Circle) {
	if a.Radius == 0 {
		return
	}
	c := p.t.ToScreen(a.Center)
	p.s.BeginPath()
	p.s.Arc(c.X, c.Y, a.Radius*p.t.Scale, 0, 2*math.Pi)
	p.s.Stroke()
	if p.active {
		x, y, r := a.Center.X, a.Center.Y, a.Radius
		handles(p.s,
			p.t.ToScreen(viewport.Pt(x-r, y)),
			p.t.ToScreen(viewport.Pt(x+r, y)),
			p.t.ToScreen(viewport.Pt(x, y-r)),
			p.t.ToScreen(viewport.Pt(x, y+r)),
		)
	}
}

func drawDraft(s Surface, d Draft) {
	c := palette.RGBA(d.Color)
	s.SetStrokeColor(c)
	s.SetFillColor(c)
	s.SetLineWidth(lineWidth)
	sx, sy := d.Start.X, d.Start.Y
	cx, cy := d.Current.X, d.Current.Y
	switch d.Kind {
	case annotation.KindText:
		s.FillRect(sx-1, sy-1, 2, 2)
	case annotation.KindArrow:
		drawArrow(s, d.Start, d.Current, math.Atan2(cy-sy, cx-sx), arrowHeadSize)
	case annotation.KindRectangle:
		s.StrokeRect(sx, sy, cx-sx, cy-sy)
	case annotation.KindCircle:
		s.BeginPath()
		s.Arc(sx, sy, d.Start.Dist(d.Current), 0, 2*math.Pi)
		s.Stroke()
	}
}
