package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
export_dir = /tmp/exports
read_only = true
color = Blue
stroke_width = 5

[minimap]
enabled = false
width = 200

[notify]
export = true
copy = false

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.ExportDir != "/tmp/exports" {
		t.Errorf("Expected export_dir '/tmp/exports', got '%s'", cfg.ExportDir)
	}
	if !cfg.ReadOnly {
		t.Error("Expected read_only to be true")
	}
	if cfg.Color != "#0000ff" {
		t.Errorf("Expected color '#0000ff', got '%s'", cfg.Color)
	}
	if cfg.StrokeWidth != 5 {
		t.Errorf("Expected stroke_width 5, got %v", cfg.StrokeWidth)
	}
	if cfg.Minimap.Enabled || cfg.Minimap.Width != 200 || cfg.Minimap.Height != 150 {
		t.Errorf("Unexpected minimap settings: %+v", cfg.Minimap)
	}
	if !cfg.Notify.Export {
		t.Error("Expected notify.export to be true")
	}
	if cfg.Notify.Copy {
		t.Error("Expected notify.copy to be false")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, input := range []string{
		"color = orange",
		"read_only = maybe",
		"stroke_width = -1",
		"[minimap]\nwidth = 0",
		"[notify]\nexport = sometimes",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
export_dir = /home/user/exports
color = green

[minimap]
enabled = true
width = 120
height = 90

[notify]
export = true
copy = true

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.ExportDir != cfg2.ExportDir {
		t.Errorf("ExportDir mismatch: %q vs %q", cfg.ExportDir, cfg2.ExportDir)
	}
	if cfg.Color != cfg2.Color || cfg.StrokeWidth != cfg2.StrokeWidth {
		t.Errorf("Drawing defaults mismatch: %s/%v vs %s/%v", cfg.Color, cfg.StrokeWidth, cfg2.Color, cfg2.StrokeWidth)
	}
	if cfg.Minimap != cfg2.Minimap {
		t.Errorf("Minimap mismatch: %+v vs %+v", cfg.Minimap, cfg2.Minimap)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.rc")
	if err := os.WriteFile(path, []byte("theme = light\ncolor = red\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LIGHTBOX_THEME", "dark")
	t.Setenv("LIGHTBOX_READ_ONLY", "true")
	t.Setenv("LIGHTBOX_COLOR", "")
	t.Setenv("LIGHTBOX_EXPORT_DIR", "")

	cfg, err := NewLoader("test", path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "dark" || !cfg.ReadOnly {
		t.Errorf("env not applied: theme=%q read_only=%v", cfg.Theme, cfg.ReadOnly)
	}
	if cfg.Color != "#ff0000" {
		t.Errorf("file value lost: color=%q", cfg.Color)
	}

	t.Setenv("LIGHTBOX_COLOR", "chartreuse")
	if _, err := NewLoader("test", path).Load(); err == nil {
		t.Error("colour outside the palette accepted from env")
	}
}
