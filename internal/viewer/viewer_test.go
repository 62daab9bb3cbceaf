package viewer

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/config"
	"github.com/example/lightbox/internal/session"
	"github.com/example/lightbox/internal/viewport"
)

var grey = color.RGBA{0x60, 0x60, 0x60, 0xff}

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = grey.R, grey.G, grey.B, grey.A
	}
	return img
}

// newViewer returns a viewer over two 200x100 images with a 400x300 canvas.
// The first image is fitted at scale 1 with offset (100, 100).
func newViewer(t *testing.T, edit func(*config.Config)) *Viewer {
	t.Helper()
	s := session.New()
	s.Add("a", "a.png")
	s.Add("b", "b.png")
	cfg := config.New()
	cfg.Minimap.Enabled = false
	if edit != nil {
		edit(cfg)
	}
	v, err := New(Options{
		Session: s,
		Images:  map[string]image.Image{"a": solid(200, 100), "b": solid(200, 100)},
		Fit:     true,
		Config:  cfg,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v.Resize(toolbarWidth+400, tabHeight+300+bottomHeight)
	return v
}

// at converts a canvas-local point to a window mouse position.
func at(x, y float64) (float32, float32) {
	return float32(x + toolbarWidth), float32(y + tabHeight)
}

func press(v *Viewer, x, y float64) bool {
	mx, my := at(x, y)
	return v.HandleMouse(mouse.Event{X: mx, Y: my, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
}

func move(v *Viewer, x, y float64) bool {
	mx, my := at(x, y)
	return v.HandleMouse(mouse.Event{X: mx, Y: my, Direction: mouse.DirNone})
}

func release(v *Viewer, x, y float64) bool {
	mx, my := at(x, y)
	return v.HandleMouse(mouse.Event{X: mx, Y: my, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func typeKeys(v *Viewer, s string) {
	for _, r := range s {
		v.HandleKey(key.Event{Rune: r, Direction: key.DirPress})
	}
}

func TestNewRequiresImages(t *testing.T) {
	if _, err := New(Options{Session: session.New()}); err == nil {
		t.Fatal("empty session accepted")
	}
}

func TestFitCentresImage(t *testing.T) {
	v := newViewer(t, nil)
	if got := v.Transform(); got != (viewport.Transform{Scale: 1, OffsetX: 100, OffsetY: 100}) {
		t.Fatalf("transform = %+v", got)
	}
}

func TestRectangleDrag(t *testing.T) {
	v := newViewer(t, nil)
	v.SetTool(ToolRect)
	press(v, 150, 140)
	move(v, 130, 120)
	release(v, 110, 110)

	all := v.sess.Current().Annotations.All()
	if len(all) != 1 {
		t.Fatalf("got %d annotations", len(all))
	}
	want := annotation.Rectangle{Min: viewport.Pt(10, 10), Width: 40, Height: 30}
	if all[0].Shape != want || all[0].Color != "#ff0000" {
		t.Errorf("annotation = %+v", all[0])
	}
	if v.Tool() != ToolRect {
		t.Error("tool changed after creating a shape")
	}
}

func TestReleasePositionEndsTheGesture(t *testing.T) {
	v := newViewer(t, nil)
	v.SetTool(ToolRect)
	press(v, 110, 110)
	release(v, 150, 150)
	all := v.sess.Current().Annotations.All()
	if len(all) != 1 {
		t.Fatalf("press and release without motion gave %d annotations", len(all))
	}
	if want := (annotation.Rectangle{Min: viewport.Pt(10, 10), Width: 40, Height: 40}); all[0].Shape != want {
		t.Errorf("rectangle = %+v", all[0].Shape)
	}

	v.SetTool(ToolArrow)
	press(v, 110, 110)
	move(v, 120, 120)
	release(v, 180, 180)
	all = v.sess.Current().Annotations.All()
	if len(all) != 2 {
		t.Fatalf("got %d annotations", len(all))
	}
	if want := (annotation.Arrow{Start: viewport.Pt(10, 10), End: viewport.Pt(80, 80)}); all[1].Shape != want {
		t.Errorf("arrow = %+v", all[1].Shape)
	}

	v.SetTool(ToolDraw)
	press(v, 110, 110)
	move(v, 130, 110)
	release(v, 150, 110)
	paths := v.sess.Current().Drawings
	if len(paths) != 1 || len(paths[0].Points) != 3 {
		t.Fatalf("paths = %+v", paths)
	}
	if last := paths[0].Points[2]; last != viewport.Pt(50, 10) {
		t.Errorf("path ends at %v", last)
	}
}

func TestLeavingCanvasAbandonsShape(t *testing.T) {
	v := newViewer(t, nil)
	v.SetTool(ToolCircle)
	press(v, 150, 150)
	move(v, 170, 150)
	move(v, -40, 150)
	release(v, -40, 150)
	if n := v.sess.Current().Annotations.Len(); n != 0 {
		t.Fatalf("got %d annotations", n)
	}
}

func TestTextPrompt(t *testing.T) {
	v := newViewer(t, nil)
	v.SetTool(ToolText)
	press(v, 120, 130)
	release(v, 120, 130)
	typeKeys(v, "hx")
	v.HandleKey(key.Event{Code: key.CodeDeleteBackspace, Direction: key.DirPress})
	typeKeys(v, "i")
	v.HandleKey(key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress})

	all := v.sess.Current().Annotations.All()
	if len(all) != 1 {
		t.Fatalf("got %d annotations", len(all))
	}
	if txt, ok := all[0].Shape.(annotation.Text); !ok || txt.Body != "hi" || txt.At != viewport.Pt(20, 30) {
		t.Errorf("annotation = %+v", all[0])
	}
}

func TestFreehandStoredInImageSpace(t *testing.T) {
	v := newViewer(t, func(c *config.Config) { c.StrokeWidth = 5 })
	v.SetTool(ToolDraw)
	v.SetColor(2)
	press(v, 100, 100)
	move(v, 120, 110)
	move(v, 140, 130)
	release(v, 140, 130)

	d := v.sess.Current().Drawings
	if len(d) != 1 {
		t.Fatalf("got %d drawings", len(d))
	}
	if d[0].Color != "#0000ff" || d[0].Width != 5 {
		t.Errorf("path style = %s/%v", d[0].Color, d[0].Width)
	}
	last := d[0].Points[len(d[0].Points)-1]
	if last != viewport.Pt(40, 30) {
		t.Errorf("last point = %+v", last)
	}
}

func TestNavigationKeepsStatePerImage(t *testing.T) {
	v := newViewer(t, nil)
	v.SetTool(ToolArrow)
	press(v, 110, 110)
	release(v, 160, 160)
	v.HandleKey(key.Event{Rune: ']', Direction: key.DirPress})
	if v.sess.Current().ID != "b" || v.sess.Current().Annotations.Len() != 0 {
		t.Fatalf("current = %s with %d annotations", v.sess.Current().ID, v.sess.Current().Annotations.Len())
	}
	v.HandleKey(key.Event{Code: key.CodePageDown, Direction: key.DirPress})
	if v.sess.Current().ID != "a" || v.sess.Current().Annotations.Len() != 1 {
		t.Fatalf("wrap-around lost state: %s", v.sess.Current().ID)
	}
}

func TestSelectAndDelete(t *testing.T) {
	v := newViewer(t, nil)
	v.SetTool(ToolRect)
	press(v, 110, 110)
	release(v, 150, 150)
	v.SetTool(ToolSelect)
	press(v, 110, 130)
	release(v, 110, 130)
	if v.sess.Current().Annotations.ActiveID() == "" {
		t.Fatal("rectangle edge not selected")
	}
	if !v.HandleKey(key.Event{Code: key.CodeDeleteForward, Direction: key.DirPress}) {
		t.Fatal("delete ignored")
	}
	if v.sess.Current().Annotations.Len() != 0 {
		t.Error("annotation not deleted")
	}
}

func TestReadOnlyBlocksEditing(t *testing.T) {
	v := newViewer(t, func(c *config.Config) { c.ReadOnly = true })
	v.sess.Current().Annotations.Add(annotation.Annotation{ID: "r", Color: "#ff0000",
		Shape: annotation.Rectangle{Min: viewport.Pt(0, 0), Width: 50, Height: 50}})
	v.SetTool(ToolRect)
	press(v, 110, 110)
	release(v, 180, 180)
	v.SetTool(ToolSelect)
	press(v, 100, 120)
	release(v, 100, 120)
	if v.sess.Current().Annotations.ActiveID() != "r" {
		t.Error("selection should work when read-only")
	}
	v.HandleKey(key.Event{Code: key.CodeDeleteForward, Direction: key.DirPress})
	if v.sess.Current().Annotations.Len() != 1 {
		t.Errorf("got %d annotations", v.sess.Current().Annotations.Len())
	}
}

func TestToolbarAndSwatches(t *testing.T) {
	v := newViewer(t, nil)
	c := toolRect(int(ToolCircle)).Min.Add(image.Pt(4, 4))
	v.HandleMouse(mouse.Event{X: float32(c.X), Y: float32(c.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if v.Tool() != ToolCircle {
		t.Errorf("tool = %v", v.Tool())
	}
	s := swatchRect(4).Min.Add(image.Pt(2, 2))
	v.HandleMouse(mouse.Event{X: float32(s.X), Y: float32(s.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if v.ann.Color() != "#00ffff" {
		t.Errorf("colour = %s", v.ann.Color())
	}
	tab := tabRect(1).Min.Add(image.Pt(4, 4))
	v.HandleMouse(mouse.Event{X: float32(tab.X), Y: float32(tab.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if v.sess.Current().ID != "b" {
		t.Errorf("tab click selected %s", v.sess.Current().ID)
	}
}

func TestWheelZoomAndReset(t *testing.T) {
	v := newViewer(t, nil)
	mx, my := at(100, 100)
	v.HandleMouse(mouse.Event{X: mx, Y: my, Button: mouse.ButtonWheelUp, Direction: mouse.DirStep})
	got := v.Transform()
	if !scalar.EqualWithinAbs(got.Scale, 1.25, 1e-9) || got.OffsetX != 100 || got.OffsetY != 100 {
		t.Fatalf("transform = %+v", got)
	}
	v.HandleKey(key.Event{Rune: '0', Direction: key.DirPress})
	if v.Transform().Scale != 1 {
		t.Errorf("reset scale = %v", v.Transform().Scale)
	}
}

func TestMinimapDragPans(t *testing.T) {
	v := newViewer(t, func(c *config.Config) { c.Minimap.Enabled = true })
	mr := v.minimapRect()
	if mr.Empty() {
		t.Fatal("minimap hidden")
	}
	// The 200x100 image sits at (0, 37.5) inside the 150x150 thumbnail.
	v.HandleMouse(mouse.Event{X: float32(mr.Min.X), Y: float32(mr.Min.Y + 75), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	got := v.Transform()
	if !scalar.EqualWithinAbs(got.OffsetX, 200, 1e-9) || !scalar.EqualWithinAbs(got.OffsetY, 100, 1e-9) {
		t.Fatalf("transform after press = %+v", got)
	}
	v.HandleMouse(mouse.Event{X: float32(mr.Min.X + 75), Y: float32(mr.Min.Y + 75), Direction: mouse.DirNone})
	if got := v.Transform(); !scalar.EqualWithinAbs(got.OffsetX, 100, 1e-9) {
		t.Fatalf("transform after drag = %+v", got)
	}
	v.HandleMouse(mouse.Event{X: float32(mr.Min.X + 75), Y: float32(mr.Min.Y + 75), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	v.HandleMouse(mouse.Event{X: float32(mr.Min.X), Y: float32(mr.Min.Y + 75), Direction: mouse.DirNone})
	if got := v.Transform(); !scalar.EqualWithinAbs(got.OffsetX, 100, 1e-9) {
		t.Errorf("moved after release: %+v", got)
	}
	v.HandleKey(key.Event{Rune: 'n', Direction: key.DirPress})
	if !v.minimapRect().Empty() {
		t.Error("minimap still shown after toggle")
	}
}

func TestPaintFrame(t *testing.T) {
	v := newViewer(t, func(c *config.Config) { c.Minimap.Enabled = true })
	v.SetTool(ToolRect)
	press(v, 110, 110)
	release(v, 150, 150)
	f := v.snapshot()
	if len(f.scene.Annotations) != 1 || f.minimap == nil {
		t.Fatalf("snapshot = %+v", f)
	}
	dst := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	paintFrame(context.Background(), dst, f)
	px := dst.RGBAAt(toolbarWidth+180, tabHeight+180)
	if d := int(px.R) - int(grey.R); d < -2 || d > 2 {
		t.Errorf("image pixel = %v", px)
	}
	edge := dst.RGBAAt(toolbarWidth+110, tabHeight+130)
	if edge.R < 0xc0 || edge.G > 0x40 {
		t.Errorf("rectangle edge = %v", edge)
	}

	v.HandleKey(key.Event{Rune: 'h', Direction: key.DirPress})
	if f := v.snapshot(); len(f.scene.Annotations) != 0 {
		t.Error("hidden layer still painted")
	}
}

func TestExportWritesComposedImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	v := newViewer(t, func(c *config.Config) { c.ExportDir = dir })
	v.Export()
	if _, err := os.Stat(filepath.Join(dir, "a-annotated.png")); err != nil {
		t.Fatalf("export missing: %v", err)
	}
	if v.message == "" {
		t.Error("no message shown")
	}
}

func TestQuit(t *testing.T) {
	v := newViewer(t, nil)
	v.HandleKey(key.Event{Rune: 'q', Direction: key.DirPress})
	if !v.Done() {
		t.Error("q did not quit")
	}
}

func TestCopyAnnotationsReportsResult(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	v := newViewer(t, nil)
	if !v.HandleKey(key.Event{Code: key.CodeC, Modifiers: key.ModControl | key.ModShift, Direction: key.DirPress}) {
		t.Fatal("Ctrl+Shift+C not handled")
	}
	if v.message == "" {
		t.Error("no message shown")
	}
}
