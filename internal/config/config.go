package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/lightbox/internal/freehand"
	"github.com/example/lightbox/internal/minimap"
	"github.com/example/lightbox/internal/palette"
	"github.com/example/lightbox/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Minimap holds minimap settings.
type Minimap struct {
	Enabled bool
	Width   int
	Height  int
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	ExportDir   string
	ReadOnly    bool
	Color       string
	StrokeWidth float64
	Minimap     Minimap
	Notify      Notify
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:       "", // empty falls back to env, then the built-in theme
		Color:       palette.Default,
		StrokeWidth: freehand.DefaultWidth,
		Minimap: Minimap{
			Enabled: true,
			Width:   minimap.DefaultWidth,
			Height:  minimap.DefaultHeight,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ThemeLoader returns a theme loader that also knows the inline themes.
func (c *Config) ThemeLoader() *theme.Loader {
	l := theme.NewLoader()
	l.Custom = c.Themes
	return l
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	fmt.Fprintf(&sb, "read_only = %v\n", c.ReadOnly)
	fmt.Fprintf(&sb, "color = %s\n", c.Color)
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.StrokeWidth)
	sb.WriteString("\n")

	sb.WriteString("[minimap]\n")
	fmt.Fprintf(&sb, "enabled = %v\n", c.Minimap.Enabled)
	fmt.Fprintf(&sb, "width = %d\n", c.Minimap.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Minimap.Height)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(theme.Format(c.Themes[name]))
		sb.WriteString("\n")
	}

	return sb.String()
}
