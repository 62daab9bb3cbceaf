// Package layout splits a display area into the grid arrangements the viewer
// supports for showing several images at once.
package layout

import (
	"fmt"
	"image"
	"strings"
)

// Grid is a named cell arrangement.
type Grid struct {
	Name       string
	Cols, Rows int
}

var (
	Single       = Grid{Name: "single", Cols: 1, Rows: 1}
	TwoByTwo     = Grid{Name: "2x2", Cols: 2, Rows: 2}
	ThreeByThree = Grid{Name: "3x3", Cols: 3, Rows: 3}
	OneByTwo     = Grid{Name: "1x2", Cols: 1, Rows: 2}
	TwoByOne     = Grid{Name: "2x1", Cols: 2, Rows: 1}
)

// Grids lists every arrangement.
var Grids = []Grid{Single, TwoByTwo, ThreeByThree, OneByTwo, TwoByOne}

// Parse finds a grid by name.
func Parse(name string) (Grid, error) {
	for _, g := range Grids {
		if strings.EqualFold(g.Name, strings.TrimSpace(name)) {
			return g, nil
		}
	}
	return Grid{}, fmt.Errorf("unknown layout %q", name)
}

// Names returns the grid names in order.
func Names() []string {
	out := make([]string, len(Grids))
	for i, g := range Grids {
		out[i] = g.Name
	}
	return out
}

// Cells returns how many images the grid shows.
func (g Grid) Cells() int { return g.Cols * g.Rows }

// Rects splits r into cells in row-major order separated by gap pixels.
// Remainder pixels go to the last row and column.
func (g Grid) Rects(r image.Rectangle, gap int) []image.Rectangle {
	if g.Cols <= 0 || g.Rows <= 0 {
		return nil
	}
	cw := (r.Dx() - gap*(g.Cols-1)) / g.Cols
	ch := (r.Dy() - gap*(g.Rows-1)) / g.Rows
	out := make([]image.Rectangle, 0, g.Cells())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			x0 := r.Min.X + col*(cw+gap)
			y0 := r.Min.Y + row*(ch+gap)
			x1, y1 := x0+cw, y0+ch
			if col == g.Cols-1 {
				x1 = r.Max.X
			}
			if row == g.Rows-1 {
				y1 = r.Max.Y
			}
			out = append(out, image.Rect(x0, y0, x1, y1))
		}
	}
	return out
}

// CellAt returns the index of the cell containing p, or -1.
func (g Grid) CellAt(r image.Rectangle, gap int, p image.Point) int {
	for i, c := range g.Rects(r, gap) {
		if p.In(c) {
			return i
		}
	}
	return -1
}

// Size returns the canvas size needed for cells of the given size.
func (g Grid) Size(cell image.Point, gap int) image.Point {
	return image.Pt(g.Cols*cell.X+gap*(g.Cols-1), g.Rows*cell.Y+gap*(g.Rows-1))
}
