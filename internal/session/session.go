// Package session keeps per-image annotation state for a series of images
// and reads and writes it as JSON.
package session

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/example/lightbox/internal/annotation"
	"github.com/example/lightbox/internal/freehand"
	"github.com/example/lightbox/internal/viewport"
)

// Image is the state kept for one image of the series.
type Image struct {
	ID          string
	Source      string
	Transform   viewport.Transform
	Annotations *annotation.Store
	Drawings    []freehand.Path
}

// Session is an ordered series of images with a current position.
type Session struct {
	images  []*Image
	current int
}

// New returns an empty session.
func New() *Session { return &Session{} }

// Add appends an image and returns its state. Adding an id twice returns the
// existing entry.
func (s *Session) Add(id, source string) *Image {
	if img, ok := s.Lookup(id); ok {
		return img
	}
	img := &Image{ID: id, Source: source, Transform: viewport.Identity(), Annotations: &annotation.Store{}}
	s.images = append(s.images, img)
	return img
}

// Lookup finds an image by id.
func (s *Session) Lookup(id string) (*Image, bool) {
	for _, img := range s.images {
		if img.ID == id {
			return img, true
		}
	}
	return nil, false
}

// Images returns the series in order.
func (s *Session) Images() []*Image {
	out := make([]*Image, len(s.images))
	copy(out, s.images)
	return out
}

// Len returns the number of images.
func (s *Session) Len() int { return len(s.images) }

// Index returns the current position.
func (s *Session) Index() int { return s.current }

// Current returns the image being viewed, or nil for an empty session.
func (s *Session) Current() *Image {
	if len(s.images) == 0 {
		return nil
	}
	return s.images[s.current]
}

// Select moves to position i.
func (s *Session) Select(i int) bool {
	if i < 0 || i >= len(s.images) {
		return false
	}
	s.current = i
	return true
}

// Navigate moves step positions through the series, wrapping at both ends.
func (s *Session) Navigate(step int) *Image {
	n := len(s.images)
	if n == 0 {
		return nil
	}
	s.current = ((s.current+step)%n + n) % n
	return s.images[s.current]
}

// AddAnnotation stores a on image id.
func (s *Session) AddAnnotation(id string, a annotation.Annotation) error {
	img, ok := s.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown image %q", id)
	}
	img.Annotations.Add(a)
	return nil
}

// DeleteAnnotation removes annotation annID from image id.
func (s *Session) DeleteAnnotation(id, annID string) error {
	img, ok := s.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown image %q", id)
	}
	img.Annotations.Delete(annID)
	return nil
}

// AddPath appends a freehand path to image id.
func (s *Session) AddPath(id string, p freehand.Path) error {
	img, ok := s.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown image %q", id)
	}
	img.Drawings = append(img.Drawings, p)
	return nil
}

type imageFile struct {
	ID          string                  `json:"id"`
	Source      string                  `json:"source,omitempty"`
	Transform   *viewport.Transform     `json:"transform,omitempty"`
	Annotations []annotation.Annotation `json:"annotations"`
	Drawings    []freehand.Path         `json:"drawings"`
}

type file struct {
	Current int         `json:"current"`
	Images  []imageFile `json:"images"`
}

// Load decodes a session document.
func Load(r io.Reader) (*Session, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s := New()
	for i, in := range f.Images {
		if in.ID == "" {
			return nil, fmt.Errorf("image %d: missing id", i)
		}
		if _, dup := s.Lookup(in.ID); dup {
			return nil, fmt.Errorf("image %d: duplicate id %q", i, in.ID)
		}
		img := s.Add(in.ID, in.Source)
		if in.Transform != nil {
			img.Transform = *in.Transform
		}
		img.Annotations = annotation.NewStore(in.Annotations...)
		img.Drawings = in.Drawings
	}
	s.Select(f.Current)
	return s, nil
}

// LoadFile reads a session from path.
func LoadFile(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Save encodes the session.
func (s *Session) Save(w io.Writer) error {
	f := file{Current: s.current, Images: make([]imageFile, 0, len(s.images))}
	for _, img := range s.images {
		t := img.Transform
		out := imageFile{
			ID:          img.ID,
			Source:      img.Source,
			Transform:   &t,
			Annotations: img.Annotations.All(),
			Drawings:    img.Drawings,
		}
		if out.Drawings == nil {
			out.Drawings = []freehand.Path{}
		}
		f.Images = append(f.Images, out)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// SaveFile writes the session to path.
func (s *Session) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
