package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/example/lightbox/internal/export"
	"github.com/example/lightbox/internal/layout"
	"github.com/example/lightbox/internal/session"
)

const montageGap = 4

type renderCmd struct {
	*root
	fs          *flag.FlagSet
	sessionPath string
	output      string
	format      string
	quality     int
	layoutName  string
	cell        string
	all         bool
	shadow      bool
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	cmd := &renderCmd{root: r, fs: fs}
	fs.StringVar(&cmd.sessionPath, "session", "", "session file to render")
	fs.StringVar(&cmd.output, "output", "", "output file; defaults to <export_dir>/<id>-annotated.<format>")
	fs.StringVar(&cmd.format, "format", "", "png, jpeg or webp; defaults to the output extension or png")
	fs.IntVar(&cmd.quality, "quality", export.DefaultQuality, "JPEG/WebP quality 1-100 (100 is lossless WebP)")
	fs.StringVar(&cmd.layoutName, "layout", "", "arrange images in a grid: single, 2x2, 3x3, 1x2 or 2x1")
	fs.StringVar(&cmd.cell, "cell", "512x512", "grid cell size as WxH")
	fs.BoolVar(&cmd.all, "all", false, "render every image instead of the current one")
	fs.BoolVar(&cmd.shadow, "shadow", false, "add a drop shadow behind each image (best with png or webp)")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.sessionPath == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.format != "" {
		if _, err := export.ParseFormat(cmd.format); err != nil {
			return nil, err
		}
	}
	if cmd.layoutName != "" && cmd.output == "" {
		return nil, fmt.Errorf("-output is required with -layout")
	}
	if cmd.all && cmd.output != "" {
		return nil, fmt.Errorf("-output cannot be used with -all")
	}
	return cmd, nil
}

func (c *renderCmd) outputFormat() export.Format {
	if c.format != "" {
		f, _ := export.ParseFormat(c.format)
		return f
	}
	if c.output != "" {
		if f, err := export.FormatFromPath(c.output); err == nil {
			return f
		}
	}
	return export.PNG
}

func (c *renderCmd) defaultPath(id string) string {
	dir := c.config.ExportDir
	if dir == "" {
		dir = "."
	}
	ext := string(c.outputFormat())
	if ext == string(export.JPEG) {
		ext = "jpg"
	}
	return filepath.Join(dir, id+"-annotated."+ext)
}

func (c *renderCmd) write(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Encode(f, img, c.outputFormat(), c.quality); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	c.notifier.Export(path)
	fmt.Fprintln(c.out(), path)
	return nil
}

func (c *renderCmd) compose(img *session.Image, pic image.Image) image.Image {
	out := export.Compose(pic, img.Annotations.All(), img.Drawings)
	if c.shadow {
		out, _ = export.Shadow(out, export.DefaultShadow())
	}
	return out
}

func (c *renderCmd) Run() error {
	s, pics, err := loadSession(c.sessionPath)
	if err != nil {
		return err
	}
	if s.Len() == 0 {
		return fmt.Errorf("%s: session has no images", c.sessionPath)
	}

	if c.layoutName != "" {
		g, err := layout.Parse(c.layoutName)
		if err != nil {
			return err
		}
		cell, err := parseSize(c.cell)
		if err != nil {
			return err
		}
		var composed []image.Image
		for _, img := range s.Images() {
			if len(composed) == g.Cells() {
				break
			}
			composed = append(composed, c.compose(img, pics[img.ID]))
		}
		return c.write(c.output, export.Montage(composed, g, cell, montageGap, color.Black))
	}

	if c.all {
		for _, img := range s.Images() {
			if err := c.write(c.defaultPath(img.ID), c.compose(img, pics[img.ID])); err != nil {
				return err
			}
		}
		return nil
	}

	img := s.Current()
	path := c.output
	if path == "" {
		path = c.defaultPath(img.ID)
	}
	return c.write(path, c.compose(img, pics[img.ID]))
}

func (c *renderCmd) Program() string {
	return c.root.subcommand("render")
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *renderCmd) Template() string {
	return "render.txt"
}
