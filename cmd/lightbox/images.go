package main

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/lightbox/internal/export"
	"github.com/example/lightbox/internal/session"
)

// imageID derives a session id from a file name.
func imageID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// openSession loads a session file. A missing file yields an empty session.
func openSession(path string) (*session.Session, error) {
	s, err := session.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.New(), nil
	}
	return s, err
}

// loadSession loads an existing session file and decodes its images.
func loadSession(path string) (*session.Session, map[string]image.Image, error) {
	s, err := session.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	images, err := decodeImages(s, filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}
	return s, images, nil
}

// addImages appends image files to s, keeping their paths absolute.
func addImages(s *session.Session, paths []string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		id := imageID(p)
		if _, ok := s.Lookup(id); ok {
			return fmt.Errorf("image id %q is already in the session", id)
		}
		s.Add(id, abs)
	}
	return nil
}

// decodeImages opens every source in s. Relative sources resolve against
// base, the directory holding the session file.
func decodeImages(s *session.Session, base string) (map[string]image.Image, error) {
	out := make(map[string]image.Image, s.Len())
	for _, img := range s.Images() {
		if img.Source == "" {
			return nil, fmt.Errorf("image %s has no source file", img.ID)
		}
		src := img.Source
		if !filepath.IsAbs(src) {
			src = filepath.Join(base, src)
		}
		pic, err := export.Open(src)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", img.ID, err)
		}
		out[img.ID] = pic
	}
	return out, nil
}

// parseSize reads WxH.
func parseSize(s string) (image.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("size %q is not WxH", s)
	}
	x, errW := strconv.Atoi(w)
	y, errH := strconv.Atoi(h)
	if errW != nil || errH != nil || x <= 0 || y <= 0 {
		return image.Point{}, fmt.Errorf("size %q is not WxH", s)
	}
	return image.Pt(x, y), nil
}
