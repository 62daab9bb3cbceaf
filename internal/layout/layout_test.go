package layout

import (
	"image"
	"testing"
)

func TestCellCounts(t *testing.T) {
	want := map[string]int{"single": 1, "2x2": 4, "3x3": 9, "1x2": 2, "2x1": 2}
	for name, n := range want {
		g, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%s): %v", name, err)
		}
		if g.Cells() != n {
			t.Errorf("%s has %d cells, want %d", name, g.Cells(), n)
		}
	}
	if _, err := Parse("4x4"); err == nil {
		t.Error("unknown layout accepted")
	}
}

func TestOneByTwoStacksVertically(t *testing.T) {
	rects := OneByTwo.Rects(image.Rect(0, 0, 100, 201), 1)
	if len(rects) != 2 {
		t.Fatalf("got %d rects", len(rects))
	}
	if rects[0] != image.Rect(0, 0, 100, 100) || rects[1] != image.Rect(0, 101, 100, 201) {
		t.Errorf("rects = %v", rects)
	}
	if TwoByOne.Rects(image.Rect(0, 0, 200, 50), 0)[1] != image.Rect(100, 0, 200, 50) {
		t.Error("2x1 should place cells side by side")
	}
}

func TestCellAtAndSize(t *testing.T) {
	r := image.Rect(0, 0, 300, 300)
	if got := ThreeByThree.CellAt(r, 0, image.Pt(250, 150)); got != 5 {
		t.Errorf("CellAt = %d, want 5", got)
	}
	if got := TwoByTwo.Size(image.Pt(64, 32), 4); got != image.Pt(132, 68) {
		t.Errorf("Size = %v", got)
	}
}
