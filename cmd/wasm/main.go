//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"syscall/js"

	"github.com/example/lightbox/internal/annotate"
	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/freehand"
	"github.com/example/lightbox/internal/hittest"
	"github.com/example/lightbox/internal/minimap"
	"github.com/example/lightbox/internal/overlay"
	"github.com/example/lightbox/internal/surface/jscanvas"
	"github.com/example/lightbox/internal/viewport"
)

var (
	store     = annotation.NewStore()
	transform = viewport.Identity()
	listeners = map[string][]js.Value{}
)

var (
	ann      *annotate.Annotator
	pen      *freehand.Engine
	mini     minimap.Dragger
	drawings []freehand.Path
)

// setup builds a fresh engine state and drops any listeners.
func setup() {
	store = annotation.NewStore()
	transform = viewport.Identity()
	listeners = map[string][]js.Value{}
	drawings = nil
	mini = minimap.Dragger{}

	ann = annotate.New(annotate.Options{
		Measurer: measurer{},
		OnAdd: func(a annotation.Annotation) {
			store.Add(a)
			emit("add", a)
		},
		OnDelete: func(id string) {
			store.Delete(id)
			emit("delete", id)
		},
	})
	ann.Attach(store)

	pen = freehand.New()
	pen.OnComplete = func(p freehand.Path) {
		drawings = append(drawings, p)
		emit("complete", p)
	}

	mini.OnPositionChange = func(x, y float64) {
		transform.OffsetX, transform.OffsetY = x, y
		emit("positionChange", map[string]float64{"x": x, "y": y})
	}
}

func main() {
	setup()

	api := js.Global().Get("Object").New()

	// --- Commands (page → engine) ---
	api.Set("setTransform", js.FuncOf(setTransform))
	api.Set("setMode", js.FuncOf(setMode))
	api.Set("setColor", js.FuncOf(setColor))
	api.Set("setReadOnly", js.FuncOf(setReadOnly))
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("pointerLeave", js.FuncOf(pointerLeave))
	api.Set("drawDown", js.FuncOf(drawDown))
	api.Set("drawMove", js.FuncOf(drawMove))
	api.Set("drawUp", js.FuncOf(drawUp))
	api.Set("drawLeave", js.FuncOf(drawLeave))
	api.Set("commitText", js.FuncOf(commitText))
	api.Set("cancelText", js.FuncOf(cancelText))
	api.Set("deleteActive", js.FuncOf(deleteActive))
	api.Set("loadAnnotations", js.FuncOf(loadAnnotations))
	api.Set("loadDrawings", js.FuncOf(loadDrawings))
	api.Set("minimapDown", js.FuncOf(minimapDown))
	api.Set("minimapMove", js.FuncOf(minimapMove))
	api.Set("minimapUp", js.FuncOf(minimapUp))
	api.Set("minimapLeave", js.FuncOf(minimapLeave))
	api.Set("minimapPan", js.FuncOf(minimapPan))
	api.Set("on", js.FuncOf(on))

	// --- Queries (page ← engine) ---
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("render", js.FuncOf(render))
	api.Set("renderDrawing", js.FuncOf(renderDrawing))
	api.Set("getAnnotations", js.FuncOf(getAnnotations))
	api.Set("getDrawings", js.FuncOf(getDrawings))
	api.Set("getPrompt", js.FuncOf(getPrompt))
	api.Set("minimapLayout", js.FuncOf(minimapLayout))

	js.Global().Set("lightbox", api)
	js.Global().Set("lightboxWasmReady", js.ValueOf(true))

	select {}
}

// measurer sizes labels with the browser's own text metrics.
type measurer struct{}

var measureCtx js.Value

func (measurer) MeasureText(text string, size float64) float64 {
	if measureCtx.IsUndefined() {
		doc := js.Global().Get("document")
		if doc.IsUndefined() {
			return 0
		}
		measureCtx = doc.Call("createElement", "canvas").Call("getContext", "2d")
	}
	if measureCtx.IsNull() {
		return 0
	}
	measureCtx.Set("font", fmt.Sprintf("%gpx sans-serif", size))
	return measureCtx.Call("measureText", text).Get("width").Float()
}

func emit(event string, payload any) {
	fns := listeners[event]
	if len(fns) == 0 {
		return
	}
	arg := toJS(payload)
	for _, fn := range fns {
		fn.Invoke(arg)
	}
}

// toJS hands structured values to the page as parsed JSON.
func toJS(v any) js.Value {
	if s, ok := v.(string); ok {
		return js.ValueOf(s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("lightbox: encode %T: %v", v, err)
		return js.Null()
	}
	return js.Global().Get("JSON").Call("parse", string(b))
}

func errorResult(err error) any {
	return js.ValueOf(map[string]any{"error": err.Error()})
}

func point(args []js.Value) (viewport.Point, bool) {
	if len(args) < 2 {
		return viewport.Point{}, false
	}
	return viewport.Pt(args[0].Float(), args[1].Float()), true
}

// --- Command Handlers ---

func setTransform(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return nil
	}
	transform = viewport.Transform{Scale: args[0].Float(), OffsetX: args[1].Float(), OffsetY: args[2].Float()}
	return nil
}

func setMode(this js.Value, args []js.Value) any {
	mode := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		mode = args[0].String()
	}
	k, ok := annotation.ParseKind(mode)
	if !ok {
		return js.ValueOf(false)
	}
	ann.SetMode(k)
	return js.ValueOf(true)
}

func setColor(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	hex := args[0].String()
	if !ann.SetColor(hex) {
		return js.ValueOf(false)
	}
	pen.Color = ann.Color()
	return js.ValueOf(true)
}

func setReadOnly(this js.Value, args []js.Value) any {
	ro := len(args) > 0 && args[0].Truthy()
	ann.SetReadOnly(ro)
	pen.ReadOnly = ro
	return nil
}

func pointerDown(this js.Value, args []js.Value) any {
	if p, ok := point(args); ok {
		ann.PointerDown(p, transform)
	}
	return nil
}

func pointerMove(this js.Value, args []js.Value) any {
	p, ok := point(args)
	if !ok {
		return js.ValueOf(false)
	}
	return js.ValueOf(ann.PointerMove(p))
}

func pointerUp(this js.Value, args []js.Value) any {
	ann.PointerUp(transform)
	return nil
}

func pointerLeave(this js.Value, args []js.Value) any {
	ann.PointerLeave()
	return nil
}

func drawDown(this js.Value, args []js.Value) any {
	if p, ok := point(args); ok {
		pen.PointerDown(p)
	}
	return nil
}

func drawMove(this js.Value, args []js.Value) any {
	p, ok := point(args)
	if !ok {
		return js.ValueOf(false)
	}
	return js.ValueOf(pen.PointerMove(p))
}

func drawUp(this js.Value, args []js.Value) any {
	pen.PointerUp(transform)
	return nil
}

func drawLeave(this js.Value, args []js.Value) any {
	pen.PointerLeave(transform)
	return nil
}

// commitText finishes the open label. An optional argument replaces the
// typed text, for pages that collect input in their own element.
func commitText(this js.Value, args []js.Value) any {
	if len(args) > 0 && args[0].Type() == js.TypeString {
		ann.SetText(args[0].String())
	}
	return js.ValueOf(ann.CommitText(transform))
}

func cancelText(this js.Value, args []js.Value) any {
	ann.CancelText()
	return nil
}

func deleteActive(this js.Value, args []js.Value) any {
	return js.ValueOf(ann.DeleteActive())
}

func loadAnnotations(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing annotations JSON"})
	}
	var list []annotation.Annotation
	if err := json.Unmarshal([]byte(args[0].String()), &list); err != nil {
		return errorResult(err)
	}
	store = annotation.NewStore(list...)
	ann.Attach(store)
	return js.ValueOf(map[string]any{"ok": true})
}

func loadDrawings(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing drawings JSON"})
	}
	var list []freehand.Path
	if err := json.Unmarshal([]byte(args[0].String()), &list); err != nil {
		return errorResult(err)
	}
	drawings = list
	return js.ValueOf(map[string]any{"ok": true})
}

// on registers fn for add, delete, complete or positionChange.
func on(this js.Value, args []js.Value) any {
	if len(args) < 2 || args[1].Type() != js.TypeFunction {
		return nil
	}
	event := args[0].String()
	listeners[event] = append(listeners[event], args[1])
	return nil
}

func minimapParams(v js.Value) minimap.Params {
	f := func(name string) float64 {
		if x := v.Get(name); x.Type() == js.TypeNumber {
			return x.Float()
		}
		return 0
	}
	return minimap.Params{
		ImageW:    f("imageW"),
		ImageH:    f("imageH"),
		ThumbW:    f("thumbW"),
		ThumbH:    f("thumbH"),
		ViewportW: f("viewportW"),
		ViewportH: f("viewportH"),
		Transform: transform,
	}
}

// minimapArgs reads (x, y, params) where x,y is a thumbnail point.
func minimapArgs(args []js.Value) (viewport.Point, minimap.Params, bool) {
	if len(args) < 3 {
		return viewport.Point{}, minimap.Params{}, false
	}
	return viewport.Pt(args[0].Float(), args[1].Float()), minimapParams(args[2]), true
}

func minimapDown(this js.Value, args []js.Value) any {
	if p, params, ok := minimapArgs(args); ok {
		mini.PointerDown(p, params)
	}
	return nil
}

// minimapMove recentres only while a minimap press is held.
func minimapMove(this js.Value, args []js.Value) any {
	if p, params, ok := minimapArgs(args); ok {
		mini.PointerMove(p, params)
	}
	return js.ValueOf(mini.Dragging())
}

func minimapUp(this js.Value, args []js.Value) any {
	mini.PointerUp()
	return nil
}

func minimapLeave(this js.Value, args []js.Value) any {
	mini.PointerLeave()
	return nil
}

// minimapPan recentres once, as a click on the minimap would.
func minimapPan(this js.Value, args []js.Value) any {
	if p, params, ok := minimapArgs(args); ok {
		mini.PointerDown(p, params)
		mini.PointerUp()
	}
	return nil
}

// --- Query Handlers ---

func hitTest(this js.Value, args []js.Value) any {
	p, ok := point(args)
	if !ok {
		return js.Null()
	}
	id, hit := hittest.Test(p, transform, store.All(), measurer{})
	if !hit {
		return js.Null()
	}
	return js.ValueOf(id)
}

// surfaceFor accepts a canvas element or its 2D context.
func surfaceFor(args []js.Value) *jscanvas.Surface {
	if len(args) < 1 {
		return nil
	}
	canvas := args[0]
	if c := canvas.Get("canvas"); c.Truthy() {
		canvas = c
	}
	s, err := jscanvas.New(canvas)
	if err != nil {
		log.Printf("lightbox: %v", err)
		return nil
	}
	return s
}

func render(this js.Value, args []js.Value) any {
	if s := surfaceFor(args); s != nil {
		overlay.Render(s, ann.Scene(transform))
	}
	return nil
}

func renderDrawing(this js.Value, args []js.Value) any {
	if s := surfaceFor(args); s != nil {
		pen.Render(s, transform, drawings)
	}
	return nil
}

func getAnnotations(this js.Value, args []js.Value) any {
	b, err := json.Marshal(store.All())
	if err != nil {
		return errorResult(err)
	}
	return js.ValueOf(string(b))
}

func getDrawings(this js.Value, args []js.Value) any {
	b, err := json.Marshal(drawings)
	if err != nil {
		return errorResult(err)
	}
	return js.ValueOf(string(b))
}

func getPrompt(this js.Value, args []js.Value) any {
	p, ok := ann.Prompt()
	if !ok {
		return js.Null()
	}
	return js.ValueOf(map[string]any{"x": p.At.X, "y": p.At.Y, "text": p.Text})
}

func minimapLayout(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.Null()
	}
	l := minimap.Compute(minimapParams(args[0]))
	rect := func(r minimap.Rect) map[string]any {
		return map[string]any{"x": r.X, "y": r.Y, "w": r.W, "h": r.H}
	}
	return js.ValueOf(map[string]any{
		"miniScale": l.MiniScale,
		"offsetX":   l.Offset.X,
		"offsetY":   l.Offset.Y,
		"image":     rect(l.Image),
		"visible":   rect(l.Visible),
	})
}
