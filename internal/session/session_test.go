package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/freehand"
	"github.com/example/lightbox/internal/viewport"
)

func TestNavigateWraps(t *testing.T) {
	s := New()
	for _, id := range []string{"a", "b", "c"} {
		s.Add(id, id+".png")
	}
	if got := s.Navigate(-1).ID; got != "c" {
		t.Errorf("prev from first = %s", got)
	}
	if got := s.Navigate(1).ID; got != "a" {
		t.Errorf("next from last = %s", got)
	}
	if got := s.Navigate(5).ID; got != "c" {
		t.Errorf("Navigate(5) = %s", got)
	}
	if New().Navigate(1) != nil {
		t.Error("empty session navigated")
	}
}

func TestStateIsPerImage(t *testing.T) {
	s := New()
	s.Add("a", "")
	s.Add("b", "")
	ann := annotation.Annotation{ID: "x", Color: "#ff0000", Shape: annotation.Circle{Radius: 3}}
	if err := s.AddAnnotation("a", ann); err != nil {
		t.Fatal(err)
	}
	if err := s.AddAnnotation("zzz", ann); err == nil {
		t.Error("unknown image accepted")
	}
	b, _ := s.Lookup("b")
	if b.Annotations.Len() != 0 {
		t.Error("annotation leaked to another image")
	}
	if err := s.DeleteAnnotation("a", "x"); err != nil {
		t.Fatal(err)
	}
	a, _ := s.Lookup("a")
	if a.Annotations.Len() != 0 {
		t.Error("annotation not deleted")
	}
}

func TestSaveLoad(t *testing.T) {
	s := New()
	img := s.Add("chest-1", "chest-1.png")
	img.Transform = viewport.Transform{Scale: 2, OffsetX: -10, OffsetY: 4}
	img.Annotations.Add(annotation.Annotation{ID: "r", Color: "#00ff00", Shape: annotation.Rectangle{Min: viewport.Pt(1, 2), Width: 3, Height: 4}})
	if err := s.AddPath("chest-1", freehand.Path{ID: "p", Points: []viewport.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, Color: "#ff0000", Width: 3}); err != nil {
		t.Fatal(err)
	}
	s.Add("chest-2", "chest-2.png")
	s.Navigate(1)

	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Len() != 2 || back.Current().ID != "chest-2" {
		t.Fatalf("loaded %d images, current %v", back.Len(), back.Current())
	}
	got, _ := back.Lookup("chest-1")
	if got.Transform != img.Transform || got.Source != "chest-1.png" {
		t.Errorf("image = %+v", got)
	}
	if a, ok := got.Annotations.Get("r"); !ok || a.Shape != img.Annotations.All()[0].Shape {
		t.Errorf("annotation = %+v", a)
	}
	if len(got.Drawings) != 1 || len(got.Drawings[0].Points) != 2 {
		t.Errorf("drawings = %+v", got.Drawings)
	}
}

func TestLoadRejectsDuplicates(t *testing.T) {
	in := `{"images":[{"id":"a","annotations":[]},{"id":"a","annotations":[]}]}`
	if _, err := Load(strings.NewReader(in)); err == nil {
		t.Error("duplicate ids accepted")
	}
	bad := `{"images":[{"id":"a","annotations":[{"id":"x","type":"blob","x":0,"y":0,"color":"#ff0000"}]}]}`
	if _, err := Load(strings.NewReader(bad)); err == nil {
		t.Error("bad annotation accepted")
	}
}
