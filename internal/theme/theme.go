package theme

import (
	"image/color"
	"reflect"

	"github.com/example/lightbox/internal/minimap"
)

// Theme defines the colours of the viewer chrome and minimap.
type Theme struct {
	Name string

	// General
	Background color.RGBA // behind tabs and canvas
	Foreground color.RGBA // status and message text

	// Toolbar & Tabs
	ToolbarBackground color.RGBA
	TabBackground     color.RGBA // inactive series tab
	TabActive         color.RGBA
	TabText           color.RGBA
	TabTextActive     color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Text prompt
	PromptBackground color.RGBA
	PromptText       color.RGBA

	// Minimap
	MinimapBackground color.RGBA
	MinimapBorder     color.RGBA
	MinimapStroke     color.RGBA
	MinimapFill       color.RGBA
}

// Default returns the hardcoded light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		TabBackground:         color.RGBA{220, 220, 220, 255},
		TabActive:             color.RGBA{200, 200, 200, 255},
		TabText:               color.RGBA{0, 0, 0, 255},
		TabTextActive:         color.RGBA{0, 0, 0, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{40, 40, 40, 255},
		CheckerDark:           color.RGBA{24, 24, 24, 255},
		PromptBackground:      color.RGBA{255, 255, 255, 255},
		PromptText:            color.RGBA{0, 0, 0, 255},
		MinimapBackground:     color.RGBA{243, 244, 246, 255},
		MinimapBorder:         color.RGBA{209, 213, 219, 255},
		MinimapStroke:         color.RGBA{0, 98, 204, 204},
		MinimapFill:           color.RGBA{0, 12, 26, 26},
	}
}

// Minimap returns the minimap style for t.
func (t *Theme) Minimap() minimap.Style {
	return minimap.Style{
		Background: t.MinimapBackground,
		Border:     t.MinimapBorder,
		Stroke:     t.MinimapStroke,
		Fill:       t.MinimapFill,
	}
}

// ColorFields returns the names of every colour field in declaration order.
func ColorFields() []string {
	var out []string
	typ := reflect.TypeOf(Theme{})
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type == reflect.TypeOf(color.RGBA{}) {
			out = append(out, typ.Field(i).Name)
		}
	}
	return out
}

// Get returns the colour field called name, matched case-insensitively.
func (t *Theme) Get(name string) (color.RGBA, bool) {
	f := field(t, name)
	if !f.IsValid() {
		return color.RGBA{}, false
	}
	return f.Interface().(color.RGBA), true
}

// Set assigns the colour field called name. Unknown names are ignored and
// reported as false.
func (t *Theme) Set(name string, c color.RGBA) bool {
	f := field(t, name)
	if !f.IsValid() {
		return false
	}
	f.Set(reflect.ValueOf(c))
	return true
}

func field(t *Theme, name string) reflect.Value {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type == reflect.TypeOf(color.RGBA{}) && equalFold(f.Name, name) {
			return val.Field(i)
		}
	}
	return reflect.Value{}
}
