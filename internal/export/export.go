// Package export flattens annotations and drawings onto their image and
// writes the result in common raster formats.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/freehand"
	"github.com/example/lightbox/internal/layout"
	"github.com/example/lightbox/internal/overlay"
	"github.com/example/lightbox/internal/surface/vector"
	"github.com/example/lightbox/internal/viewport"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WebP Format = "webp"
)

// DefaultQuality is used for lossy formats when none is given.
const DefaultQuality = 90

// ParseFormat accepts png, jpg, jpeg and webp.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "webp":
		return WebP, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// FormatFromPath derives the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%s: no file extension", path)
	}
	return ParseFormat(ext)
}

// Open decodes an image file. WebP is handled as well as the formats
// imaging understands.
func Open(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, err := webp.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return img, nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// Compose draws annotations and then freehand paths over a copy of img at
// image scale.
func Compose(img image.Image, annotations []annotation.Annotation, paths []freehand.Path) image.Image {
	s := vector.ForImage(img)
	overlay.Draw(s, overlay.Scene{Transform: viewport.Identity(), Annotations: annotations})
	freehand.DrawPaths(s, viewport.Identity(), paths)
	return s.Image()
}

// Montage arranges images on a grid. Each image is fitted inside its cell
// and centred; unused cells stay background.
func Montage(images []image.Image, g layout.Grid, cell image.Point, gap int, bg color.Color) *image.RGBA {
	size := g.Size(cell, gap)
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	for i, r := range g.Rects(dst.Bounds(), gap) {
		if i >= len(images) || images[i] == nil {
			break
		}
		fit := imaging.Fit(images[i], r.Dx(), r.Dy(), imaging.Lanczos)
		b := fit.Bounds()
		at := r.Min.Add(image.Pt((r.Dx()-b.Dx())/2, (r.Dy()-b.Dy())/2))
		draw.Draw(dst, b.Sub(b.Min).Add(at), fit, b.Min, draw.Over)
	}
	return dst
}

// Encode writes img to w. quality applies to JPEG and WebP; a WebP quality
// of 100 is written lossless.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	switch f {
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case WebP:
		return webp.Encode(w, img, &webp.Options{Lossless: quality == 100, Quality: float32(quality)})
	}
	return fmt.Errorf("unsupported format %q", f)
}

// Save writes img to path in the format its extension names.
func Save(path string, img image.Image, quality int) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(out, img, f, quality); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}
