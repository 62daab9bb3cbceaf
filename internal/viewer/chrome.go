package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/lightbox/internal/theme"
)

const (
	tabHeight    = 24
	bottomHeight = 24
	toolbarWidth = 72
	toolHeight   = 24
	tabWidth     = 96
	swatchSize   = 18
	swatchPitch  = 22
	swatchCols   = toolbarWidth / swatchPitch
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

type buttonKind int

const (
	kindTool buttonKind = iota
	kindSwatch
	kindTab
)

// button is a clickable chrome element. Buttons are rebuilt from viewer
// state whenever they are needed so the painter can hold a copy.
type button struct {
	kind     buttonKind
	label    string
	rect     image.Rectangle
	swatch   color.RGBA
	state    ButtonState
	activate func()
}

func (b button) Rect() image.Rectangle { return b.rect }

func (b button) Activate() {
	if b.activate != nil {
		b.activate()
	}
}

func (b button) Draw(dst *image.RGBA, th *theme.Theme) {
	switch b.kind {
	case kindSwatch:
		draw.Draw(dst, b.rect, image.NewUniform(b.swatch), image.Point{}, draw.Src)
		border := th.ButtonBorder
		thick := 1
		if b.state == StatePressed {
			border = th.Foreground
			thick = 2
		}
		strokeRect(dst, b.rect, border, thick)
		return
	case kindTab:
		bg, fg := th.TabBackground, th.TabText
		switch b.state {
		case StateHover:
			bg = th.ButtonBackground
		case StatePressed:
			bg, fg = th.TabActive, th.TabTextActive
		}
		draw.Draw(dst, b.rect, image.NewUniform(bg), image.Point{}, draw.Src)
		label(dst, b.label, b.rect.Min.X+4, b.rect.Min.Y+16, fg, b.rect.Dx()-8)
		return
	}
	bg, fg := th.ButtonBackground, th.ButtonText
	switch b.state {
	case StateHover:
		bg = blend(th.ButtonBackground, th.ButtonBackgroundPress)
	case StatePressed:
		bg, fg = th.ButtonBackgroundPress, th.ButtonTextPress
	}
	draw.Draw(dst, b.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	strokeRect(dst, b.rect, th.ButtonBorder, 1)
	label(dst, b.label, b.rect.Min.X+4, b.rect.Min.Y+16, fg, b.rect.Dx()-8)
}

func blend(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		uint8((int(a.R) + int(b.R)) / 2),
		uint8((int(a.G) + int(b.G)) / 2),
		uint8((int(a.B) + int(b.B)) / 2),
		uint8((int(a.A) + int(b.A)) / 2),
	}
}

// label draws s with basicfont, cut with an ellipsis to fit maxW pixels.
func label(dst *image.RGBA, s string, x, y int, col color.Color, maxW int) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	if maxW > 0 && d.MeasureString(s).Ceil() > maxW {
		rs := []rune(s)
		for len(rs) > 0 && d.MeasureString(string(rs)+"…").Ceil() > maxW {
			rs = rs[:len(rs)-1]
		}
		s = string(rs) + "…"
	}
	d.DrawString(s)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

func toolRect(i int) image.Rectangle {
	y := tabHeight + i*toolHeight
	return image.Rect(0, y, toolbarWidth, y+toolHeight)
}

func swatchRect(i int) image.Rectangle {
	top := toolRect(len(tools)).Min.Y + 6
	x := 4 + (i%swatchCols)*swatchPitch
	y := top + (i/swatchCols)*swatchPitch
	return image.Rect(x, y, x+swatchSize, y+swatchSize)
}

func tabRect(i int) image.Rectangle {
	x := toolbarWidth + i*tabWidth
	return image.Rect(x, 0, x+tabWidth, tabHeight)
}

// drawChrome paints the title, tabs, toolbar and status bar around the
// canvas.
func drawChrome(dst *image.RGBA, f *frame) {
	th := f.theme
	b := dst.Bounds()
	draw.Draw(dst, image.Rect(0, 0, b.Max.X, tabHeight), image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, tabHeight, toolbarWidth, b.Max.Y-bottomHeight), image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	label(dst, "Lightbox", 4, 16, th.Foreground, toolbarWidth-8)
	for _, btn := range f.buttons {
		btn.Draw(dst, th)
	}

	status := image.Rect(0, b.Max.Y-bottomHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, status, image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	text := fmt.Sprintf("%s  %.0f%%  %d/%d %s", f.tool, f.scene.Transform.Scale*100, f.current+1, f.count, f.imageID)
	if f.readOnly {
		text += "  [read-only]"
	}
	if f.prompt != nil {
		text += "  Enter:place  Esc:cancel"
	} else {
		text += "  [/]:series  +/-/0:zoom  N:minimap  H:layer  ^S:save  ^E:export  ^C:copy  Q:quit"
	}
	label(dst, text, 4, status.Min.Y+16, th.Foreground, status.Dx()-8)
}
