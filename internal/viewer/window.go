package viewer

import (
	"context"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

const (
	defaultWidth  = 1024
	defaultHeight = 768
)

// Run executes the UI loop using shiny's driver.
func (v *Viewer) Run() { driver.Main(v.Main) }

func (v *Viewer) initialSize() (int, int) {
	w, h := defaultWidth, defaultHeight
	if pic, ok := v.images[v.sess.Current().ID]; ok {
		b := pic.Bounds()
		w = min(max(b.Dx()+toolbarWidth, 640), 1600)
		h = min(max(b.Dy()+tabHeight+bottomHeight, 480), 1200)
	}
	return w, h
}

// Main runs the window on s until it is closed or the user quits.
func (v *Viewer) Main(s screen.Screen) {
	width, height := v.initialSize()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Lightbox"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	v.Resize(width, height)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan *frame, 1)
	defer close(paintCh)
	go func() {
		for f := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, f)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				v.PointerLeave()
				w.Send(paint.Event{})
			}
		case size.Event:
			v.Resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			f := v.snapshot()
			select {
			case paintCh <- f:
			default:
				<-paintCh
				paintCh <- f
			}
		case mouse.Event:
			if v.HandleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if v.HandleKey(e) {
				w.Send(paint.Event{})
			}
			if v.Done() {
				return
			}
		case error:
			log.Print(e)
		}
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, f *frame) {
	if f.width <= 0 || f.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{f.width, f.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	paintFrame(ctx, b.RGBA(), f)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
