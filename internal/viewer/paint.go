package viewer

import (
	"context"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/lightbox/internal/annotate"
	"github.com/example/lightbox/internal/freehand"
	"github.com/example/lightbox/internal/minimap"
	"github.com/example/lightbox/internal/overlay"
	"github.com/example/lightbox/internal/surface"
	"github.com/example/lightbox/internal/surface/raster"
	"github.com/example/lightbox/internal/theme"
	"github.com/example/lightbox/internal/viewport"
)

const (
	checkerSize = 8
	promptSize  = 14
	messageSize = 32
)

type miniFrame struct {
	rect   image.Rectangle
	layout minimap.Layout
	thumb  image.Image
	style  minimap.Style
}

// frame is an immutable copy of what one repaint shows.
type frame struct {
	width, height int
	canvas        image.Rectangle
	theme         *theme.Theme
	tool          Tool
	readOnly      bool
	current       int
	count         int
	imageID       string
	picture       image.Image
	scene         overlay.Scene
	drawings      []freehand.Path
	trace         *freehand.Path
	prompt        *annotate.Prompt
	minimap       *miniFrame
	buttons       []button
	message       string
}

// paintFrame renders f into dst, giving up early when ctx is cancelled.
func paintFrame(ctx context.Context, dst *image.RGBA, f *frame) {
	th := f.theme
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	if f.canvas.Empty() {
		drawChrome(dst, f)
		return
	}
	raster.Checkerboard(dst, f.canvas, checkerSize, th.CheckerLight, th.CheckerDark)
	if ctx.Err() != nil {
		return
	}

	t := f.scene.Transform
	if f.picture != nil {
		b := f.picture.Bounds()
		at := f.canvas.Min.Add(image.Pt(int(math.Round(t.OffsetX)), int(math.Round(t.OffsetY))))
		dr := image.Rect(at.X, at.Y,
			at.X+int(math.Round(float64(b.Dx())*t.Scale)),
			at.Y+int(math.Round(float64(b.Dy())*t.Scale)))
		canvas := dst.SubImage(f.canvas).(*image.RGBA)
		xdraw.ApproxBiLinear.Scale(canvas, dr, f.picture, b, draw.Over, nil)
	}
	if ctx.Err() != nil {
		return
	}

	s := raster.NewAt(dst, f.canvas)
	overlay.Draw(s, f.scene)
	freehand.DrawPaths(s, t, f.drawings)
	if f.trace != nil {
		freehand.DrawPaths(s, viewport.Identity(), []freehand.Path{*f.trace})
	}
	if f.prompt != nil {
		drawPrompt(s, th, *f.prompt)
	}
	if ctx.Err() != nil {
		return
	}

	if m := f.minimap; m != nil {
		minimap.Render(dst, m.rect.Min, m.thumb, m.layout, m.rect.Dx(), m.rect.Dy(), m.style)
	}
	drawChrome(dst, f)
	if f.message != "" {
		drawMessage(dst, th, f.message)
	}
}

func drawPrompt(s *raster.Surface, th *theme.Theme, p annotate.Prompt) {
	text := p.Text + "|"
	w := s.MeasureText(text, promptSize)
	s.SetFillColor(th.PromptBackground)
	s.FillRect(p.At.X-4, p.At.Y-promptSize-2, w+8, promptSize+8)
	s.SetStrokeColor(th.ButtonBorder)
	s.SetLineWidth(1)
	s.StrokeRect(p.At.X-4, p.At.Y-promptSize-2, w+8, promptSize+8)
	s.SetFillColor(th.PromptText)
	s.FillText(text, p.At.X, p.At.Y, promptSize)
}

func drawMessage(dst *image.RGBA, th *theme.Theme, msg string) {
	face := surface.Face(messageSize)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: face}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	b := dst.Bounds()
	px := (b.Dx() - wmsg) / 2
	py := (b.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	bg := th.PromptBackground
	bg.A = 230
	draw.Draw(dst, rect, image.NewUniform(bg), image.Point{}, draw.Over)
	strokeRect(dst, rect, th.Foreground, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
