package viewport

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestToScreen(t *testing.T) {
	tr := Transform{Scale: 2, OffsetX: 10, OffsetY: 20}
	got := tr.ToScreen(Pt(5, 5))
	if got != Pt(20, 30) {
		t.Fatalf("ToScreen = %+v, want {20 30}", got)
	}
}

func TestRoundTrip(t *testing.T) {
	transforms := []Transform{
		Identity(),
		{Scale: 2, OffsetX: 10, OffsetY: 20},
		{Scale: 0.5, OffsetX: -300.25, OffsetY: 17},
		{Scale: 9.75, OffsetX: 1e4, OffsetY: -1e4},
	}
	points := []Point{Pt(0, 0), Pt(5, 5), Pt(-12.5, 1024), Pt(3.3333, 0.1)}
	for _, tr := range transforms {
		for _, p := range points {
			back := tr.ToImage(tr.ToScreen(p))
			if !scalar.EqualWithinAbs(back.X, p.X, 1e-9) || !scalar.EqualWithinAbs(back.Y, p.Y, 1e-9) {
				t.Errorf("%+v: round trip of %+v gave %+v", tr, p, back)
			}
			fwd := tr.ToScreen(tr.ToImage(p))
			if !scalar.EqualWithinAbs(fwd.X, p.X, 1e-9) || !scalar.EqualWithinAbs(fwd.Y, p.Y, 1e-9) {
				t.Errorf("%+v: screen round trip of %+v gave %+v", tr, p, fwd)
			}
		}
	}
}

func TestZeroScaleDoesNotPanic(t *testing.T) {
	tr := Transform{}
	if tr.Valid() {
		t.Fatal("zero scale reported valid")
	}
	p := tr.ToImage(Pt(1, 0))
	if !math.IsInf(p.X, 1) || !math.IsNaN(p.Y) {
		t.Errorf("ToImage with zero scale = %+v", p)
	}
}

func TestCameraClampsScale(t *testing.T) {
	c := NewCamera(Identity())
	c.SetTransform(0, 0, 100)
	if c.State().Scale != MaxScale {
		t.Errorf("scale = %v, want %v", c.State().Scale, MaxScale)
	}
	c.SetTransform(0, 0, 0.01)
	if c.State().Scale != MinScale {
		t.Errorf("scale = %v, want %v", c.State().Scale, MinScale)
	}
}

func TestCameraZoomKeepsAnchor(t *testing.T) {
	c := NewCamera(Transform{Scale: 1, OffsetX: 15, OffsetY: -4})
	anchor := Pt(120, 80)
	before := c.State().ToImage(anchor)
	c.ZoomIn(anchor)
	c.ZoomIn(anchor)
	after := c.State().ToImage(anchor)
	if !scalar.EqualWithinAbs(before.X, after.X, 1e-9) || !scalar.EqualWithinAbs(before.Y, after.Y, 1e-9) {
		t.Errorf("anchor moved from %+v to %+v", before, after)
	}
	if !scalar.EqualWithinAbs(c.State().Scale, ZoomStep*ZoomStep, 1e-12) {
		t.Errorf("scale = %v", c.State().Scale)
	}
}

func TestCameraResetAndCenter(t *testing.T) {
	var calls int
	c := NewCamera(Identity())
	c.OnChange = func(Transform) { calls++ }
	c.Center(400, 200, 200, 200)
	want := Transform{Scale: 0.5, OffsetX: 0, OffsetY: 50}
	if c.State() != want {
		t.Fatalf("Center = %+v, want %+v", c.State(), want)
	}
	c.PanBy(30, 30)
	c.Reset()
	if c.State() != want {
		t.Errorf("Reset = %+v, want %+v", c.State(), want)
	}
	if calls != 3 {
		t.Errorf("OnChange calls = %d, want 3", calls)
	}
}
