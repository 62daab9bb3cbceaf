package annotation

import (
	"encoding/json"
	"fmt"

	"github.com/example/lightbox/internal/viewport"
)

// record is the flat form annotations are exchanged in.
type record struct {
	ID     string           `json:"id"`
	Type   Kind             `json:"type"`
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
	Width  *float64         `json:"width,omitempty"`
	Height *float64         `json:"height,omitempty"`
	Text   *string          `json:"text,omitempty"`
	Points []viewport.Point `json:"points,omitempty"`
	Color  string           `json:"color"`
}

type recordBuilder struct{ r *record }

func (b recordBuilder) VisitText(s Text) {
	body := s.Body
	b.r.Text = &body
}

func (b recordBuilder) VisitArrow(s Arrow) {
	b.r.Points = []viewport.Point{s.Start, s.End}
}

func (b recordBuilder) VisitRectangle(s Rectangle) {
	w, h := s.Width, s.Height
	b.r.Width, b.r.Height = &w, &h
}

func (b recordBuilder) VisitCircle(s Circle) {
	r := s.Radius
	b.r.Width = &r
}

// MarshalJSON writes the flat record form.
func (a Annotation) MarshalJSON() ([]byte, error) {
	if a.Shape == nil {
		return nil, fmt.Errorf("annotation %q has no shape", a.ID)
	}
	at := a.Anchor()
	r := record{ID: a.ID, Type: a.Kind(), X: at.X, Y: at.Y, Color: a.Color}
	a.Shape.Accept(recordBuilder{&r})
	return json.Marshal(r)
}

// UnmarshalJSON reads the flat record form and rejects malformed geometry.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	at := viewport.Pt(r.X, r.Y)
	dim := func(p *float64, name string) (float64, error) {
		if p == nil {
			return 0, fmt.Errorf("%s annotation %q: missing %s", r.Type, r.ID, name)
		}
		if *p < 0 {
			return 0, fmt.Errorf("%s annotation %q: negative %s", r.Type, r.ID, name)
		}
		return *p, nil
	}
	var shape Shape
	switch r.Type {
	case KindText:
		var body string
		if r.Text != nil {
			body = *r.Text
		}
		shape = Text{At: at, Body: body}
	case KindArrow:
		if len(r.Points) < 2 {
			return fmt.Errorf("arrow annotation %q: need 2 points, got %d", r.ID, len(r.Points))
		}
		shape = Arrow{Start: r.Points[0], End: r.Points[1]}
	case KindRectangle:
		w, err := dim(r.Width, "width")
		if err != nil {
			return err
		}
		h, err := dim(r.Height, "height")
		if err != nil {
			return err
		}
		shape = Rectangle{Min: at, Width: w, Height: h}
	case KindCircle:
		radius, err := dim(r.Width, "width")
		if err != nil {
			return err
		}
		shape = Circle{Center: at, Radius: radius}
	default:
		return fmt.Errorf("annotation %q: unknown type %q", r.ID, r.Type)
	}
	*a = Annotation{ID: r.ID, Color: r.Color, Shape: shape}
	return nil
}
