// Package annotate turns pointer gestures into annotations.
//
// The Annotator never mutates annotation content itself. New annotations and
// deletions are reported through callbacks so the host decides what to store;
// only the selection is written back to the attached store.
package annotate

import (
	"math"
	"strings"

	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/hittest"
	"github.com/example/lightbox/internal/overlay"
	"github.com/example/lightbox/internal/palette"
	"github.com/example/lightbox/internal/viewport"
)

// MinSize is the smallest rectangle side or circle radius, in screen
// pixels, that is kept when a drag finishes.
const MinSize = 5.0

// Options configures an Annotator.
type Options struct {
	ReadOnly bool
	Color    string
	// Measurer sizes text labels for hit-testing.
	Measurer hittest.TextMeasurer
	// NewID overrides id generation.
	NewID func() string

	OnAdd    func(annotation.Annotation)
	OnDelete func(id string)
	OnSelect func(id string)
}

// Prompt is the text input shown while a label is being typed.
type Prompt struct {
	At   viewport.Point // screen position
	Text string
}

// Annotator is the annotation-layer state machine: Idle until a pointer
// press in a drawing mode, Drawing until release.
type Annotator struct {
	opts    Options
	mode    annotation.Kind
	color   string
	store   *annotation.Store
	drawing bool
	start   viewport.Point
	current viewport.Point
	prompt  *Prompt
}

// New returns an idle annotator with no mode selected.
func New(opts Options) *Annotator {
	a := &Annotator{opts: opts, color: palette.Default}
	if opts.Color != "" && palette.Contains(opts.Color) {
		a.color = strings.ToLower(opts.Color)
	}
	if a.opts.NewID == nil {
		a.opts.NewID = annotation.NewID
	}
	return a
}

// Attach points the annotator at the host's store for the current image.
// Any gesture in progress is dropped.
func (a *Annotator) Attach(s *annotation.Store) {
	a.store = s
	a.drawing = false
	a.prompt = nil
}

// Store returns the attached store.
func (a *Annotator) Store() *annotation.Store { return a.store }

// Mode returns the current tool, KindNone for selection.
func (a *Annotator) Mode() annotation.Kind { return a.mode }

// SetMode changes the tool and abandons any drag in progress.
func (a *Annotator) SetMode(m annotation.Kind) {
	a.mode = m
	a.drawing = false
	if m != annotation.KindText {
		a.prompt = nil
	}
}

// Color returns the colour new annotations get.
func (a *Annotator) Color() string { return a.color }

// SetColor selects a palette colour. Colours outside the palette are
// rejected.
func (a *Annotator) SetColor(hex string) bool {
	if !palette.Contains(hex) {
		return false
	}
	a.color = strings.ToLower(strings.TrimSpace(hex))
	return true
}

// ReadOnly reports whether editing is disabled.
func (a *Annotator) ReadOnly() bool { return a.opts.ReadOnly }

// SetReadOnly toggles editing. Enabling it drops any gesture in progress.
func (a *Annotator) SetReadOnly(ro bool) {
	a.opts.ReadOnly = ro
	if ro {
		a.drawing = false
		a.prompt = nil
	}
}

// Drawing reports whether a drag is in progress.
func (a *Annotator) Drawing() bool { return a.drawing }

// Prompt returns the open text prompt, if any.
func (a *Annotator) Prompt() (Prompt, bool) {
	if a.prompt == nil {
		return Prompt{}, false
	}
	return *a.prompt, true
}

// PointerDown handles a press at screen point p.
func (a *Annotator) PointerDown(p viewport.Point, t viewport.Transform) {
	if a.mode == annotation.KindNone {
		a.selectAt(p, t)
		return
	}
	if a.opts.ReadOnly {
		return
	}
	a.drawing = true
	a.start, a.current = p, p
	if a.mode == annotation.KindText {
		if a.prompt == nil {
			a.prompt = &Prompt{}
		}
		a.prompt.At = p
	}
}

func (a *Annotator) selectAt(p viewport.Point, t viewport.Transform) {
	if a.store == nil {
		return
	}
	id, _ := hittest.Test(p, t, a.store.All(), a.opts.Measurer)
	a.store.SetActive(id)
	if a.opts.OnSelect != nil {
		a.opts.OnSelect(id)
	}
}

// PointerMove tracks the drag. It reports whether a redraw is needed.
func (a *Annotator) PointerMove(p viewport.Point) bool {
	if a.opts.ReadOnly || !a.drawing || a.mode == annotation.KindNone {
		return false
	}
	a.current = p
	return true
}

// PointerUp finishes the drag and emits the new shape if it is large
// enough. The mode stays selected.
func (a *Annotator) PointerUp(t viewport.Transform) {
	if a.opts.ReadOnly || !a.drawing || a.mode == annotation.KindNone || a.mode == annotation.KindText {
		a.drawing = false
		return
	}
	a.drawing = false
	s, c := t.ToImage(a.start), t.ToImage(a.current)
	var shape annotation.Shape
	switch a.mode {
	case annotation.KindArrow:
		if s == c {
			return
		}
		shape = annotation.Arrow{Start: s, End: c}
	case annotation.KindRectangle:
		w, h := c.X-s.X, c.Y-s.Y
		if math.Abs(w) < MinSize/t.Scale || math.Abs(h) < MinSize/t.Scale {
			return
		}
		shape = annotation.Rectangle{
			Min:    viewport.Pt(math.Min(s.X, c.X), math.Min(s.Y, c.Y)),
			Width:  math.Abs(w),
			Height: math.Abs(h),
		}
	case annotation.KindCircle:
		r := s.Dist(c)
		if r < MinSize/t.Scale {
			return
		}
		shape = annotation.Circle{Center: s, Radius: r}
	}
	if shape == nil || !finite(shape) {
		return
	}
	a.emit(shape)
}

// PointerLeave abandons a shape drag without emitting anything.
func (a *Annotator) PointerLeave() {
	if a.mode != annotation.KindText {
		a.drawing = false
	}
}

func (a *Annotator) emit(shape annotation.Shape) {
	if a.opts.OnAdd == nil {
		return
	}
	a.opts.OnAdd(annotation.Annotation{ID: a.opts.NewID(), Color: a.color, Shape: shape})
}

// TypeRune appends r to the open prompt.
func (a *Annotator) TypeRune(r rune) {
	if a.prompt != nil {
		a.prompt.Text += string(r)
	}
}

// Backspace removes the last character of the open prompt.
func (a *Annotator) Backspace() {
	if a.prompt == nil || a.prompt.Text == "" {
		return
	}
	rs := []rune(a.prompt.Text)
	a.prompt.Text = string(rs[:len(rs)-1])
}

// SetText replaces the prompt contents.
func (a *Annotator) SetText(s string) {
	if a.prompt != nil {
		a.prompt.Text = s
	}
}

// CommitText closes the prompt and emits a text annotation at its image
// position unless the input is blank. It is used for Enter and for clicks
// outside the drawing surface.
func (a *Annotator) CommitText(t viewport.Transform) bool {
	p := a.prompt
	a.prompt = nil
	a.drawing = false
	if p == nil || strings.TrimSpace(p.Text) == "" || a.opts.ReadOnly {
		return false
	}
	shape := annotation.Text{At: t.ToImage(p.At), Body: p.Text}
	if !finite(shape) {
		return false
	}
	a.emit(shape)
	return true
}

// CancelText closes the prompt without emitting.
func (a *Annotator) CancelText() {
	a.prompt = nil
	a.drawing = false
}

// DeleteActive asks the host to delete the selected annotation and clears
// the selection.
func (a *Annotator) DeleteActive() bool {
	if a.opts.ReadOnly || a.store == nil {
		return false
	}
	id := a.store.ActiveID()
	if id == "" {
		return false
	}
	if a.opts.OnDelete != nil {
		a.opts.OnDelete(id)
	}
	a.store.SetActive("")
	return true
}

// Draft returns the shape being dragged, for rendering.
func (a *Annotator) Draft() *overlay.Draft {
	if !a.drawing || a.mode == annotation.KindNone {
		return nil
	}
	return &overlay.Draft{Kind: a.mode, Start: a.start, Current: a.current, Color: a.color}
}

// Scene builds the frame to render for transform t.
func (a *Annotator) Scene(t viewport.Transform) overlay.Scene {
	sc := overlay.Scene{Transform: t, Draft: a.Draft()}
	if a.store != nil {
		sc.Annotations = a.store.All()
		sc.ActiveID = a.store.ActiveID()
	}
	return sc
}

func finite(s annotation.Shape) bool {
	ok := func(p viewport.Point) bool {
		return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
	}
	switch v := s.(type) {
	case annotation.Arrow:
		return ok(v.Start) && ok(v.End)
	case annotation.Circle:
		return ok(v.Center) && !math.IsNaN(v.Radius) && !math.IsInf(v.Radius, 0)
	case annotation.Rectangle:
		return ok(v.Min) && ok(viewport.Pt(v.Width, v.Height))
	case annotation.Text:
		return ok(v.At)
	}
	return false
}
