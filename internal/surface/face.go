// Package surface holds what the drawing surface implementations share.
package surface

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontOnce sync.Once
	textFont *opentype.Font
	faces    sync.Map // map[float64]font.Face
)

// Face returns a Go Regular face at size pixels, cached per size.
func Face(size float64) font.Face {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Fatalf("parse font: %v", err)
		}
		textFont = f
	})
	if size <= 0 {
		size = 1
	}
	if face, ok := faces.Load(size); ok {
		return face.(font.Face)
	}
	face, err := opentype.NewFace(textFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	actual, _ := faces.LoadOrStore(size, face)
	return actual.(font.Face)
}

// MeasureText returns the advance width of text at size pixels.
func MeasureText(text string, size float64) float64 {
	d := &font.Drawer{Face: Face(size)}
	return float64(d.MeasureString(text)) / 64
}
