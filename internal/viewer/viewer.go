// Package viewer is the desktop window around the overlay engine: series
// tabs, a tool bar, the annotated canvas and the minimap.
package viewer

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/lightbox/internal/annotate"
	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/clipboard"
	"github.com/example/lightbox/internal/config"
	"github.com/example/lightbox/internal/export"
	"github.com/example/lightbox/internal/freehand"
	"github.com/example/lightbox/internal/minimap"
	"github.com/example/lightbox/internal/notify"
	"github.com/example/lightbox/internal/overlay"
	"github.com/example/lightbox/internal/palette"
	"github.com/example/lightbox/internal/session"
	"github.com/example/lightbox/internal/surface"
	"github.com/example/lightbox/internal/theme"
	"github.com/example/lightbox/internal/viewport"
)

// Tool is the active toolbar tool.
type Tool int

const (
	ToolMove Tool = iota
	ToolSelect
	ToolText
	ToolArrow
	ToolRect
	ToolCircle
	ToolDraw
)

var tools = []struct {
	tool  Tool
	label string
	key   rune
	kind  annotation.Kind
}{
	{ToolMove, "M:Move", 'm', annotation.KindNone},
	{ToolSelect, "S:Select", 's', annotation.KindNone},
	{ToolText, "T:Text", 't', annotation.KindText},
	{ToolArrow, "A:Arrow", 'a', annotation.KindArrow},
	{ToolRect, "R:Rect", 'r', annotation.KindRectangle},
	{ToolCircle, "C:Circle", 'c', annotation.KindCircle},
	{ToolDraw, "D:Draw", 'd', annotation.KindNone},
}

func (t Tool) String() string {
	switch t {
	case ToolMove:
		return "Move"
	case ToolSelect:
		return "Select"
	case ToolText:
		return "Text"
	case ToolArrow:
		return "Arrow"
	case ToolRect:
		return "Rect"
	case ToolCircle:
		return "Circle"
	case ToolDraw:
		return "Draw"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

const (
	minimapMargin = 10
	panStep       = 10
	messageTTL    = 2 * time.Second
)

// Options configures a Viewer.
type Options struct {
	Session *session.Session
	// Images holds the decoded picture for each session image id.
	Images map[string]image.Image
	// SessionPath is where Ctrl+S writes the session. Empty disables it.
	SessionPath string
	// Fit centres an image in the canvas the first time it is shown,
	// unless the session already holds a view for it.
	Fit      bool
	Config   *config.Config
	Theme    *theme.Theme
	Notifier *notify.Notifier
}

type measurer struct{}

func (measurer) MeasureText(text string, size float64) float64 {
	return surface.MeasureText(text, size)
}

// Viewer holds all interactive state. It is owned by the event loop; the
// painter only ever sees frame snapshots.
type Viewer struct {
	sess     *session.Session
	images   map[string]image.Image
	cfg      *config.Config
	theme    *theme.Theme
	notifier *notify.Notifier
	sessPath string

	width, height int
	tool          Tool
	camera        *viewport.Camera
	ann           *annotate.Annotator
	pen           *freehand.Engine
	mini          minimap.Dragger
	fitted        map[string]bool
	thumbs        map[string]*image.NRGBA

	showMinimap     bool
	showAnnotations bool
	pressed         bool
	panning         bool
	panLast         viewport.Point
	hoverButton     int

	message      string
	messageUntil time.Time
	done         bool

	now func() time.Time
}

// New prepares a viewer over a non-empty session.
func New(opts Options) (*Viewer, error) {
	if opts.Session == nil || opts.Session.Len() == 0 {
		return nil, errors.New("no images to view")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	v := &Viewer{
		sess:            opts.Session,
		images:          opts.Images,
		cfg:             cfg,
		theme:           th,
		notifier:        opts.Notifier,
		sessPath:        opts.SessionPath,
		tool:            ToolMove,
		fitted:          make(map[string]bool),
		thumbs:          make(map[string]*image.NRGBA),
		showMinimap:     cfg.Minimap.Enabled,
		showAnnotations: true,
		hoverButton:     -1,
		now:             time.Now,
	}
	if v.images == nil {
		v.images = make(map[string]image.Image)
	}
	for _, img := range v.sess.Images() {
		if !opts.Fit || img.Transform != viewport.Identity() {
			v.fitted[img.ID] = true
		}
	}
	v.ann = annotate.New(annotate.Options{
		ReadOnly: cfg.ReadOnly,
		Color:    cfg.Color,
		Measurer: measurer{},
		OnAdd: func(a annotation.Annotation) {
			if err := v.sess.AddAnnotation(v.sess.Current().ID, a); err != nil {
				log.Printf("add annotation: %v", err)
			}
		},
		OnDelete: func(id string) {
			if err := v.sess.DeleteAnnotation(v.sess.Current().ID, id); err != nil {
				log.Printf("delete annotation: %v", err)
			}
		},
	})
	v.pen = freehand.New()
	v.pen.ReadOnly = cfg.ReadOnly
	v.pen.Color = v.ann.Color()
	if cfg.StrokeWidth > 0 {
		v.pen.Width = cfg.StrokeWidth
	}
	v.pen.OnComplete = func(p freehand.Path) {
		if err := v.sess.AddPath(v.sess.Current().ID, p); err != nil {
			log.Printf("add drawing: %v", err)
		}
	}
	v.mini.OnPositionChange = func(x, y float64) {
		v.camera.SetTransform(x, y, v.camera.State().Scale)
	}
	v.attach()
	return v, nil
}

// attach binds the camera and annotator to the current image.
func (v *Viewer) attach() {
	img := v.sess.Current()
	v.camera = viewport.NewCamera(img.Transform)
	v.camera.OnChange = func(t viewport.Transform) { img.Transform = t }
	img.Transform = v.camera.State()
	v.ann.Attach(img.Annotations)
	v.fit()
}

func (v *Viewer) fit() {
	img := v.sess.Current()
	if v.fitted[img.ID] || v.width == 0 {
		return
	}
	pic, ok := v.images[img.ID]
	if !ok {
		return
	}
	c := v.canvas()
	b := pic.Bounds()
	v.camera.Center(float64(b.Dx()), float64(b.Dy()), float64(c.Dx()), float64(c.Dy()))
	v.fitted[img.ID] = true
}

// Resize records the window size in pixels.
func (v *Viewer) Resize(w, h int) {
	v.width, v.height = w, h
	v.fit()
}

// Done reports whether the user asked to quit.
func (v *Viewer) Done() bool { return v.done }

// Tool returns the selected tool.
func (v *Viewer) Tool() Tool { return v.tool }

// Transform returns the current image transform.
func (v *Viewer) Transform() viewport.Transform { return v.camera.State() }

func (v *Viewer) canvas() image.Rectangle {
	r := image.Rect(toolbarWidth, tabHeight, v.width, v.height-bottomHeight)
	if r.Empty() {
		return image.Rectangle{Min: r.Min, Max: r.Min}
	}
	return r
}

func (v *Viewer) local(p image.Point) viewport.Point {
	c := v.canvas()
	return viewport.Pt(float64(p.X-c.Min.X), float64(p.Y-c.Min.Y))
}

// SetTool switches tools, finishing any gesture of the previous one.
func (v *Viewer) SetTool(t Tool) {
	v.leave()
	if v.tool == ToolText && t != ToolText {
		v.ann.CommitText(v.camera.State())
	}
	v.tool = t
	v.ann.SetMode(tools[t].kind)
}

// SetColor selects palette entry i for new annotations and drawings.
func (v *Viewer) SetColor(i int) {
	e := palette.At(i)
	if v.ann.SetColor(e.Hex) {
		v.pen.Color = e.Hex
	}
}

// Navigate moves step images through the series, wrapping around.
func (v *Viewer) Navigate(step int) {
	v.leave()
	v.ann.CommitText(v.camera.State())
	v.sess.Navigate(step)
	v.attach()
}

// Select jumps to image i of the series.
func (v *Viewer) Select(i int) {
	if i == v.sess.Index() {
		return
	}
	v.leave()
	v.ann.CommitText(v.camera.State())
	if v.sess.Select(i) {
		v.attach()
	}
}

// leave ends any pointer gesture as if the pointer left the canvas.
func (v *Viewer) leave() {
	t := v.camera.State()
	v.mini.PointerLeave()
	v.pen.PointerLeave(t)
	v.ann.PointerLeave()
	v.pressed = false
	v.panning = false
}

// PointerLeave is called when the window loses the pointer or focus.
func (v *Viewer) PointerLeave() { v.leave() }

func (v *Viewer) buttons() []button {
	out := make([]button, 0, len(tools)+palette.Len()+v.sess.Len())
	for i, t := range tools {
		tool := t.tool
		b := button{kind: kindTool, label: t.label, rect: toolRect(i), activate: func() { v.SetTool(tool) }}
		if tool == v.tool {
			b.state = StatePressed
		}
		out = append(out, b)
	}
	for i, e := range palette.Entries() {
		idx := i
		b := button{kind: kindSwatch, label: e.Name, rect: swatchRect(i), swatch: e.Color, activate: func() { v.SetColor(idx) }}
		if e.Hex == v.ann.Color() {
			b.state = StatePressed
		}
		out = append(out, b)
	}
	for i, img := range v.sess.Images() {
		idx := i
		b := button{kind: kindTab, label: img.ID, rect: tabRect(i), activate: func() { v.Select(idx) }}
		if i == v.sess.Index() {
			b.state = StatePressed
		}
		out = append(out, b)
	}
	for i := range out {
		if i == v.hoverButton && out[i].state == StateDefault {
			out[i].state = StateHover
		}
	}
	return out
}

func (v *Viewer) minimapParams() (minimap.Params, bool) {
	img := v.sess.Current()
	pic, ok := v.images[img.ID]
	if !ok {
		return minimap.Params{}, false
	}
	c := v.canvas()
	b := pic.Bounds()
	return minimap.Params{
		ImageW:    float64(b.Dx()),
		ImageH:    float64(b.Dy()),
		ThumbW:    float64(v.cfg.Minimap.Width),
		ThumbH:    float64(v.cfg.Minimap.Height),
		ViewportW: float64(c.Dx()),
		ViewportH: float64(c.Dy()),
		Transform: v.camera.State(),
	}, true
}

func (v *Viewer) minimapRect() image.Rectangle {
	if !v.showMinimap {
		return image.Rectangle{}
	}
	c := v.canvas()
	w, h := v.cfg.Minimap.Width, v.cfg.Minimap.Height
	if w <= 0 {
		w = minimap.DefaultWidth
	}
	if h <= 0 {
		h = minimap.DefaultHeight
	}
	r := image.Rect(c.Max.X-w-minimapMargin, c.Max.Y-h-minimapMargin, c.Max.X-minimapMargin, c.Max.Y-minimapMargin)
	if !r.In(c) {
		return image.Rectangle{}
	}
	return r
}

func (v *Viewer) flash(format string, args ...any) {
	v.message = fmt.Sprintf(format, args...)
	v.messageUntil = v.now().Add(messageTTL)
	log.Print(v.message)
}

// HandleMouse applies a mouse event. It reports whether a repaint is needed.
func (v *Viewer) HandleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	c := v.canvas()
	t := v.camera.State()

	switch e.Button {
	case mouse.ButtonWheelUp, mouse.ButtonWheelDown:
		if e.Direction == mouse.DirRelease || !p.In(c) {
			return false
		}
		if e.Button == mouse.ButtonWheelUp {
			v.camera.ZoomIn(v.local(p))
		} else {
			v.camera.ZoomOut(v.local(p))
		}
		return true
	}

	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		if v.message != "" && v.now().Before(v.messageUntil) {
			v.messageUntil = time.Time{}
		}
		if !p.In(c) {
			// Clicking the chrome commits any open label first.
			v.ann.CommitText(t)
			for _, b := range v.buttons() {
				if p.In(b.Rect()) {
					b.Activate()
					break
				}
			}
			return true
		}
		if mr := v.minimapRect(); p.In(mr) {
			if params, ok := v.minimapParams(); ok {
				v.mini.PointerDown(viewport.Pt(float64(p.X-mr.Min.X), float64(p.Y-mr.Min.Y)), params)
			}
			return true
		}
		lp := v.local(p)
		v.pressed = true
		switch v.tool {
		case ToolMove:
			v.panning = true
			v.panLast = lp
		case ToolDraw:
			v.pen.PointerDown(lp)
		default:
			v.ann.PointerDown(lp, t)
		}
		return true

	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		if v.mini.Dragging() {
			v.mini.PointerUp()
			return true
		}
		if !v.pressed {
			return false
		}
		if p.In(c) {
			lp := v.local(p)
			switch {
			case v.panning:
				v.camera.PanBy(lp.X-v.panLast.X, lp.Y-v.panLast.Y)
				t = v.camera.State()
			case v.tool == ToolDraw:
				if cur, ok := v.pen.Current(); ok && cur.Points[len(cur.Points)-1] != lp {
					v.pen.PointerMove(lp)
				}
			default:
				v.ann.PointerMove(lp)
			}
		}
		v.pressed = false
		v.panning = false
		v.pen.PointerUp(t)
		v.ann.PointerUp(t)
		return true

	case mouse.DirNone:
		if v.mini.Dragging() {
			mr := v.minimapRect()
			if params, ok := v.minimapParams(); ok && !mr.Empty() {
				v.mini.PointerMove(viewport.Pt(float64(p.X-mr.Min.X), float64(p.Y-mr.Min.Y)), params)
			}
			return true
		}
		if v.pressed {
			if !p.In(c) {
				v.leave()
				return true
			}
			lp := v.local(p)
			switch {
			case v.panning:
				v.camera.PanBy(lp.X-v.panLast.X, lp.Y-v.panLast.Y)
				v.panLast = lp
				return true
			case v.tool == ToolDraw:
				return v.pen.PointerMove(lp)
			default:
				return v.ann.PointerMove(lp)
			}
		}
		hover := -1
		for i, b := range v.buttons() {
			if p.In(b.Rect()) {
				hover = i
				break
			}
		}
		if hover != v.hoverButton {
			v.hoverButton = hover
			return true
		}
	}
	return false
}

// HandleKey applies a key event. It reports whether a repaint is needed.
func (v *Viewer) HandleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	t := v.camera.State()

	if _, open := v.ann.Prompt(); open {
		switch e.Code {
		case key.CodeReturnEnter:
			v.ann.CommitText(t)
		case key.CodeEscape:
			v.ann.CancelText()
		case key.CodeDeleteBackspace:
			v.ann.Backspace()
		default:
			if e.Rune > 0 && e.Modifiers&key.ModControl == 0 {
				v.ann.TypeRune(e.Rune)
			} else {
				return false
			}
		}
		return true
	}

	if e.Modifiers&key.ModControl != 0 {
		switch e.Code {
		case key.CodeS:
			v.SaveSession()
		case key.CodeE:
			v.Export()
		case key.CodeC:
			if e.Modifiers&key.ModShift != 0 {
				v.CopyAnnotations()
			} else {
				v.Copy()
			}
		default:
			return false
		}
		return true
	}

	switch e.Code {
	case key.CodeDeleteForward, key.CodeDeleteBackspace:
		return v.ann.DeleteActive()
	case key.CodeEscape:
		v.leave()
		v.ann.Store().SetActive("")
		return true
	case key.CodeLeftArrow:
		v.camera.PanBy(-panStep, 0)
		return true
	case key.CodeRightArrow:
		v.camera.PanBy(panStep, 0)
		return true
	case key.CodeUpArrow:
		v.camera.PanBy(0, -panStep)
		return true
	case key.CodeDownArrow:
		v.camera.PanBy(0, panStep)
		return true
	case key.CodePageUp:
		v.Navigate(-1)
		return true
	case key.CodePageDown:
		v.Navigate(1)
		return true
	}

	c := v.canvas()
	centre := viewport.Pt(float64(c.Dx())/2, float64(c.Dy())/2)
	switch e.Rune {
	case '+', '=':
		v.camera.ZoomIn(centre)
	case '-':
		v.camera.ZoomOut(centre)
	case '0':
		v.camera.Reset()
	case '[':
		v.Navigate(-1)
	case ']':
		v.Navigate(1)
	case 'n', 'N':
		v.showMinimap = !v.showMinimap
		v.mini.PointerLeave()
	case 'h', 'H':
		v.showAnnotations = !v.showAnnotations
	case 'q', 'Q':
		v.done = true
	case '1', '2', '3', '4', '5', '6':
		v.SetColor(int(e.Rune - '1'))
	default:
		for _, tl := range tools {
			if e.Rune == tl.key || e.Rune == tl.key-'a'+'A' {
				v.SetTool(tl.tool)
				return true
			}
		}
		return false
	}
	return true
}

// Compose flattens the current image with its annotations and drawings.
func (v *Viewer) Compose() (image.Image, error) {
	img := v.sess.Current()
	pic, ok := v.images[img.ID]
	if !ok {
		return nil, fmt.Errorf("image %s is not loaded", img.ID)
	}
	return export.Compose(pic, img.Annotations.All(), img.Drawings), nil
}

// Export writes the composed current image to the export directory.
func (v *Viewer) Export() {
	out, err := v.Compose()
	if err != nil {
		v.flash("export: %v", err)
		return
	}
	dir := v.cfg.ExportDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		v.flash("export: %v", err)
		return
	}
	path := filepath.Join(dir, v.sess.Current().ID+"-annotated.png")
	if err := export.Save(path, out, export.DefaultQuality); err != nil {
		v.flash("export: %v", err)
		return
	}
	v.notifier.Export(path)
	v.flash("exported %s", path)
}

// Copy puts the composed current image on the clipboard.
func (v *Viewer) Copy() {
	out, err := v.Compose()
	if err == nil {
		err = clipboard.WriteImage(out)
	}
	if err != nil {
		v.flash("copy: %v", err)
		return
	}
	v.notifier.Copy(v.sess.Current().ID)
	v.flash("image copied to clipboard")
}

// CopyAnnotations puts the current image's annotations on the clipboard in
// their wire form.
func (v *Viewer) CopyAnnotations() {
	img := v.sess.Current()
	data, err := json.MarshalIndent(img.Annotations.All(), "", "  ")
	if err == nil {
		err = clipboard.WriteText(string(data))
	}
	if err != nil {
		v.flash("copy: %v", err)
		return
	}
	v.notifier.Copy(img.ID + " annotations")
	v.flash("%d annotations copied to clipboard", img.Annotations.Len())
}

// SaveSession writes the session file, or exports when there is none.
func (v *Viewer) SaveSession() {
	if v.sessPath == "" {
		v.Export()
		return
	}
	if err := v.sess.SaveFile(v.sessPath); err != nil {
		v.flash("save: %v", err)
		return
	}
	v.flash("saved %s", v.sessPath)
}

// snapshot copies everything the painter needs.
func (v *Viewer) snapshot() *frame {
	img := v.sess.Current()
	t := v.camera.State()
	f := &frame{
		width:    v.width,
		height:   v.height,
		canvas:   v.canvas(),
		theme:    v.theme,
		tool:     v.tool,
		readOnly: v.ann.ReadOnly(),
		current:  v.sess.Index(),
		count:    v.sess.Len(),
		imageID:  img.ID,
		picture:  v.images[img.ID],
		scene:    v.ann.Scene(t),
		buttons:  v.buttons(),
	}
	if v.showAnnotations {
		f.drawings = append([]freehand.Path(nil), img.Drawings...)
	} else {
		f.scene.Annotations = nil
	}
	if trace, ok := v.pen.Current(); ok {
		f.trace = &trace
	}
	if p, ok := v.ann.Prompt(); ok {
		f.prompt = &p
	}
	if v.message != "" && v.now().Before(v.messageUntil) {
		f.message = v.message
	}
	if mr := v.minimapRect(); !mr.Empty() {
		if params, ok := v.minimapParams(); ok {
			l := minimap.Compute(params)
			f.minimap = &miniFrame{rect: mr, layout: l, thumb: v.thumbnail(img.ID, l), style: v.theme.Minimap()}
		}
	}
	return f
}

func (v *Viewer) thumbnail(id string, l minimap.Layout) *image.NRGBA {
	th := v.thumbs[id]
	if th != nil {
		b := th.Bounds()
		if b.Dx() == roundPx(l.Image.W) && b.Dy() == roundPx(l.Image.H) {
			return th
		}
	}
	th = minimap.Thumbnail(v.images[id], l)
	v.thumbs[id] = th
	return th
}

func roundPx(f float64) int {
	n := int(f + 0.5)
	if n < 1 {
		return 1
	}
	return n
}

// Scene exposes the overlay scene for the current image.
func (v *Viewer) Scene() overlay.Scene { return v.ann.Scene(v.camera.State()) }
