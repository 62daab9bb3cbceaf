// Package annotation defines the editable overlay shapes and the ordered
// store they live in. All geometry is in image coordinates.
package annotation

import (
	"github.com/example/lightbox/internal/typeid"
	"github.com/example/lightbox/internal/viewport"
)

// Kind names a shape variant. It is also the annotation tool mode.
type Kind string

const (
	KindNone      Kind = ""
	KindText      Kind = "text"
	KindArrow     Kind = "arrow"
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
)

// Kinds lists the shape variants in toolbar order.
var Kinds = []Kind{KindText, KindArrow, KindRectangle, KindCircle}

// ParseKind converts a mode name. The empty string and "none" map to KindNone.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindText, KindArrow, KindRectangle, KindCircle:
		return k, true
	case KindNone, "none":
		return KindNone, true
	}
	return KindNone, false
}

// Shape is one of Text, Arrow, Rectangle or Circle.
type Shape interface {
	Kind() Kind
	Accept(v Visitor)
	anchor() viewport.Point
}

// Visitor has one method per shape variant. Adding a variant breaks every
// implementation at compile time.
type Visitor interface {
	VisitText(Text)
	VisitArrow(Arrow)
	VisitRectangle(Rectangle)
	VisitCircle(Circle)
}

// Text is a label whose baseline starts at At.
type Text struct {
	At   viewport.Point
	Body string
}

// Arrow points from Start to End.
type Arrow struct {
	Start, End viewport.Point
}

// Rectangle is an axis-aligned box with Min as its top-left corner.
type Rectangle struct {
	Min           viewport.Point
	Width, Height float64
}

// Circle is centred on Center.
type Circle struct {
	Center viewport.Point
	Radius float64
}

func (Text) Kind() Kind      { return KindText }
func (Arrow) Kind() Kind     { return KindArrow }
func (Rectangle) Kind() Kind { return KindRectangle }
func (Circle) Kind() Kind    { return KindCircle }

func (s Text) Accept(v Visitor)      { v.VisitText(s) }
func (s Arrow) Accept(v Visitor)     { v.VisitArrow(s) }
func (s Rectangle) Accept(v Visitor) { v.VisitRectangle(s) }
func (s Circle) Accept(v Visitor)    { v.VisitCircle(s) }

func (s Text) anchor() viewport.Point      { return s.At }
func (s Arrow) anchor() viewport.Point     { return s.Start }
func (s Rectangle) anchor() viewport.Point { return s.Min }
func (s Circle) anchor() viewport.Point    { return s.Center }

// Annotation is a shape with identity and colour.
type Annotation struct {
	ID    string
	Color string
	Shape Shape
}

// NewID returns a fresh annotation id.
func NewID() string { return typeid.NewAnnotationID() }

// Kind returns the shape variant, or KindNone for an empty annotation.
func (a Annotation) Kind() Kind {
	if a.Shape == nil {
		return KindNone
	}
	return a.Shape.Kind()
}

// Anchor returns the x/y position the annotation is stored under.
func (a Annotation) Anchor() viewport.Point {
	if a.Shape == nil {
		return viewport.Point{}
	}
	return a.Shape.anchor()
}
