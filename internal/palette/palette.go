// Package palette holds the fixed set of annotation colours and helpers for
// turning colour strings into color.RGBA values.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Entry is one selectable colour.
type Entry struct {
	Name  string
	Hex   string
	Color color.RGBA
}

// Default is the colour tools start with.
const Default = "#ff0000"

var entries = []Entry{
	{Name: "red", Hex: "#ff0000", Color: color.RGBA{0xff, 0x00, 0x00, 0xff}},
	{Name: "green", Hex: "#00ff00", Color: color.RGBA{0x00, 0xff, 0x00, 0xff}},
	{Name: "blue", Hex: "#0000ff", Color: color.RGBA{0x00, 0x00, 0xff, 0xff}},
	{Name: "yellow", Hex: "#ffff00", Color: color.RGBA{0xff, 0xff, 0x00, 0xff}},
	{Name: "cyan", Hex: "#00ffff", Color: color.RGBA{0x00, 0xff, 0xff, 0xff}},
	{Name: "magenta", Hex: "#ff00ff", Color: color.RGBA{0xff, 0x00, 0xff, 0xff}},
}

// Entries returns a copy of the palette in display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of palette colours.
func Len() int { return len(entries) }

// At returns the entry at idx, clamped to the palette bounds.
func At(idx int) Entry {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(entries) {
		idx = len(entries) - 1
	}
	return entries[idx]
}

// Index returns the palette position of hex, or -1.
func Index(hex string) int {
	for i, e := range entries {
		if strings.EqualFold(e.Hex, strings.TrimSpace(hex)) {
			return i
		}
	}
	return -1
}

// Contains reports whether hex is a palette colour.
func Contains(hex string) bool { return Index(hex) >= 0 }

// Lookup resolves a palette name or hex value to the palette's hex form.
func Lookup(s string) (string, error) {
	want := strings.TrimSpace(s)
	for _, e := range entries {
		if strings.EqualFold(e.Name, want) || strings.EqualFold(e.Hex, want) {
			return e.Hex, nil
		}
	}
	return "", fmt.Errorf("color %q is not in the palette", s)
}

// RGBA returns the colour for a palette hex value, falling back to the
// default colour for anything unparsable.
func RGBA(hex string) color.RGBA {
	if i := Index(hex); i >= 0 {
		return entries[i].Color
	}
	if c, err := Parse(hex); err == nil {
		return c
	}
	return entries[0].Color
}

// Parse accepts CSS colour names, palette names, #RRGGBB and #RRGGBBAA.
func Parse(s string) (color.RGBA, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	if want == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[want]; ok {
		return c, nil
	}
	for _, e := range entries {
		if e.Name == want {
			return e.Color, nil
		}
	}
	if !strings.HasPrefix(want, "#") || (len(want) != 7 && len(want) != 9) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	val, err := strconv.ParseUint(want[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(want) == 7 {
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is translucent.
func Hex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
