package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/freehand"
	"github.com/example/lightbox/internal/layout"
	"github.com/example/lightbox/internal/viewport"
)

func grey(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{0x40, 0x40, 0x40, 0xff})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{"a.png": PNG, "b.JPG": JPEG, "c.jpeg": JPEG, "d.webp": WebP}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%s) = %q, %v", path, got, err)
		}
	}
	if _, err := FormatFromPath("noext"); err == nil {
		t.Error("missing extension accepted")
	}
	if _, err := ParseFormat("tiff"); err == nil {
		t.Error("tiff accepted")
	}
}

func TestComposeDrawsAtImageScale(t *testing.T) {
	base := grey(100, 100)
	out := Compose(base,
		[]annotation.Annotation{{ID: "r", Color: "#ff0000", Shape: annotation.Rectangle{Min: viewport.Pt(20, 20), Width: 40, Height: 40}}},
		[]freehand.Path{{ID: "p", Points: []viewport.Point{{X: 10, Y: 90}, {X: 90, Y: 90}}, Color: "#0000ff", Width: 3}},
	)
	r, g, b, _ := out.At(20, 40).RGBA()
	if r>>8 < 0x80 || g>>8 > 0x60 || b>>8 > 0x60 {
		t.Errorf("rectangle edge = %v", out.At(20, 40))
	}
	_, _, b, _ = out.At(50, 90).RGBA()
	if b>>8 < 0x80 {
		t.Errorf("path pixel = %v", out.At(50, 90))
	}
	if base.RGBAAt(20, 40) != (color.RGBA{0x40, 0x40, 0x40, 0xff}) {
		t.Error("Compose modified its input")
	}
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, grey(8, 4), PNG, 0); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestSaveAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := Save(path, grey(16, 16), 80); err != nil {
		t.Fatalf("Save: %v", err)
	}
	img, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestMontage(t *testing.T) {
	imgs := []image.Image{grey(40, 20), grey(20, 40), grey(10, 10)}
	out := Montage(imgs, layout.TwoByTwo, image.Pt(40, 40), 2, color.White)
	if out.Bounds().Dx() != 82 || out.Bounds().Dy() != 82 {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if out.RGBAAt(20, 20) != (color.RGBA{0x40, 0x40, 0x40, 0xff}) {
		t.Errorf("first cell centre = %v", out.RGBAAt(20, 20))
	}
	if out.RGBAAt(20, 2) != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("letterbox = %v", out.RGBAAt(20, 2))
	}
	if out.RGBAAt(70, 70) != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("empty cell = %v", out.RGBAAt(70, 70))
	}
}
