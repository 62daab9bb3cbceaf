package overlay

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/viewport"
)

// recorder logs every call so frames can be compared.
type recorder struct {
	ops []string
}

func (r *recorder) log(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) MeasureText(text string, size float64) float64 {
	return float64(len(text)) * size / 2
}
func (r *recorder) Clear()                       { r.log("clear") }
func (r *recorder) SetStrokeColor(c color.Color) { r.log("stroke-color %v", c) }
func (r *recorder) SetFillColor(c color.Color)   { r.log("fill-color %v", c) }
func (r *recorder) SetLineWidth(w float64)       { r.log("line-width %g", w) }
func (r *recorder) SetRoundJoins(b bool)         { r.log("round %v", b) }
func (r *recorder) BeginPath()                   { r.log("begin") }
func (r *recorder) MoveTo(x, y float64)          { r.log("move %g %g", x, y) }
func (r *recorder) LineTo(x, y float64)          { r.log("line %.3f %.3f", x, y) }
func (r *recorder) Arc(cx, cy, rad, a0, a1 float64) {
	r.log("arc %g %g %g", cx, cy, rad)
}
func (r *recorder) ClosePath()                       { r.log("close") }
func (r *recorder) Stroke()                          { r.log("stroke") }
func (r *recorder) Fill()                            { r.log("fill") }
func (r *recorder) StrokeRect(x, y, w, h float64)    { r.log("stroke-rect %g %g %g %g", x, y, w, h) }
func (r *recorder) FillRect(x, y, w, h float64)      { r.log("fill-rect %g %g %g %g", x, y, w, h) }
func (r *recorder) FillText(s string, x, y, size float64) { r.log("text %q %g %g %g", s, x, y, size) }

func (r *recorder) count(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func sampleScene() Scene {
	return Scene{
		Transform: viewport.Transform{Scale: 2, OffsetX: 10, OffsetY: 20},
		Annotations: []annotation.Annotation{
			{ID: "r", Color: "#ff0000", Shape: annotation.Rectangle{Min: viewport.Pt(5, 5), Width: 10, Height: 20}},
			{ID: "c", Color: "#00ff00", Shape: annotation.Circle{Center: viewport.Pt(50, 50), Radius: 20}},
			{ID: "a", Color: "#0000ff", Shape: annotation.Arrow{Start: viewport.Pt(0, 0), End: viewport.Pt(10, 0)}},
			{ID: "t", Color: "#ffff00", Shape: annotation.Text{At: viewport.Pt(1, 1), Body: "hi"}},
		},
	}
}

func TestRenderClearsFirst(t *testing.T) {
	r := &recorder{}
	Render(r, sampleScene())
	if len(r.ops) == 0 || r.ops[0] != "clear" {
		t.Fatalf("first op = %v", r.ops)
	}
	if r.count("clear") != 1 {
		t.Errorf("clear called %d times", r.count("clear"))
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	sc := sampleScene()
	sc.ActiveID = "c"
	Render(a, sc)
	Render(b, sc)
	if !reflect.DeepEqual(a.ops, b.ops) {
		t.Error("two renders of the same scene differ")
	}
}

func TestActiveDecorations(t *testing.T) {
	r := &recorder{}
	sc := sampleScene()
	Render(r, sc)
	if r.count("fill-rect") != 0 {
		t.Errorf("handles drawn with nothing selected: %v", r.ops)
	}
	if r.count("line-width 3") != 0 {
		t.Error("active line width used with nothing selected")
	}

	r = &recorder{}
	sc.ActiveID = "r"
	Render(r, sc)
	want := []string{
		"stroke-rect 20 30 20 40",
		"fill-rect 15 25 10 10",
		"fill-rect 35 25 10 10",
		"fill-rect 35 65 10 10",
		"fill-rect 15 65 10 10",
	}
	for _, w := range want {
		if r.count(w) != 1 {
			t.Errorf("missing %q in %v", w, r.ops)
		}
	}
	if r.count("line-width 3") != 1 {
		t.Error("selected rectangle not drawn with width 3")
	}

	r = &recorder{}
	sc.ActiveID = "c"
	Render(r, sc)
	if r.count("fill-rect") != 4 {
		t.Errorf("circle handles = %d, want 4", r.count("fill-rect"))
	}
	if r.count("arc 110 120 40") != 1 {
		t.Errorf("circle arc missing: %v", r.ops)
	}

	r = &recorder{}
	sc.ActiveID = "t"
	Render(r, sc)
	// font 28, width 2*28/2 = 28, at (12, 22)
	if r.count(`text "hi" 12 22 28`) != 1 || r.count("stroke-rect 10 -4 32 32") != 1 {
		t.Errorf("text selection box wrong: %v", r.ops)
	}
}

func TestArrowHeadGeometry(t *testing.T) {
	l, r := ArrowHead(viewport.Pt(100, 0), 0, 10)
	dx := 10 * math.Cos(math.Pi/6)
	dy := 10 * math.Sin(math.Pi/6)
	if !scalar.EqualWithinAbs(l.X, 100-dx, 1e-9) || !scalar.EqualWithinAbs(l.Y, dy, 1e-9) {
		t.Errorf("left = %+v", l)
	}
	if !scalar.EqualWithinAbs(r.X, 100-dx, 1e-9) || !scalar.EqualWithinAbs(r.Y, -dy, 1e-9) {
		t.Errorf("right = %+v", r)
	}
}

func TestDraftDrawnLastInScreenSpace(t *testing.T) {
	r := &recorder{}
	sc := sampleScene()
	sc.Draft = &Draft{Kind: annotation.KindRectangle, Start: viewport.Pt(40, 40), Current: viewport.Pt(10, 30), Color: "#ff00ff"}
	Render(r, sc)
	last := r.ops[len(r.ops)-1]
	if last != "stroke-rect 40 40 -30 -10" {
		t.Errorf("last op = %q", last)
	}

	r = &recorder{}
	Render(r, Scene{Transform: viewport.Identity(), Draft: &Draft{Kind: annotation.KindCircle, Start: viewport.Pt(0, 0), Current: viewport.Pt(3, 4)}})
	if r.count("arc 0 0 5") != 1 {
		t.Errorf("draft circle: %v", r.ops)
	}

	r = &recorder{}
	Render(r, Scene{Transform: viewport.Identity(), Draft: &Draft{Kind: annotation.KindText, Start: viewport.Pt(7, 9)}})
	if r.count("fill-rect 6 8 2 2") != 1 {
		t.Errorf("text cursor: %v", r.ops)
	}
}

func TestNilSurface(t *testing.T) {
	Render(nil, sampleScene())
	Draw(nil, sampleScene())
}
