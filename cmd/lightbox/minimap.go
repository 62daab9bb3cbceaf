package main

import (
	"flag"
	"fmt"
	"image"

	"github.com/example/lightbox/internal/export"
	"github.com/example/lightbox/internal/minimap"
	"github.com/example/lightbox/internal/viewport"
)

type minimapCmd struct {
	*root
	fs       *flag.FlagSet
	file     string
	viewport string
	size     string
	scale    float64
	offsetX  float64
	offsetY  float64
	output   string
}

func parseMinimapCmd(args []string, r *root) (*minimapCmd, error) {
	fs := flag.NewFlagSet("minimap", flag.ExitOnError)
	cmd := &minimapCmd{root: r, fs: fs}
	fs.StringVar(&cmd.file, "file", "", "image to preview")
	fs.StringVar(&cmd.viewport, "viewport", "800x600", "main view size as WxH")
	fs.StringVar(&cmd.size, "size", fmt.Sprintf("%dx%d", minimap.DefaultWidth, minimap.DefaultHeight), "minimap size as WxH")
	fs.Float64Var(&cmd.scale, "scale", 1, "view scale")
	fs.Float64Var(&cmd.offsetX, "offset-x", 0, "view x offset in screen pixels")
	fs.Float64Var(&cmd.offsetY, "offset-y", 0, "view y offset in screen pixels")
	fs.StringVar(&cmd.output, "output", "", "write the rendered minimap to this file")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.file == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %v", cmd.scale)
	}
	return cmd, nil
}

func (c *minimapCmd) Run() error {
	view, err := parseSize(c.viewport)
	if err != nil {
		return err
	}
	size, err := parseSize(c.size)
	if err != nil {
		return err
	}
	img, err := export.Open(c.file)
	if err != nil {
		return err
	}
	b := img.Bounds()
	l := minimap.Compute(minimap.Params{
		ImageW:    float64(b.Dx()),
		ImageH:    float64(b.Dy()),
		ThumbW:    float64(size.X),
		ThumbH:    float64(size.Y),
		ViewportW: float64(view.X),
		ViewportH: float64(view.Y),
		Transform: viewport.Transform{Scale: c.scale, OffsetX: c.offsetX, OffsetY: c.offsetY},
	})
	v := l.Visible
	fmt.Fprintf(c.out(), "scale %.4f visible %.1f,%.1f %.1fx%.1f\n", l.MiniScale, v.X, v.Y, v.W, v.H)

	if c.output == "" {
		return nil
	}
	st := minimap.DefaultStyle()
	if c.activeTheme != nil {
		st = c.activeTheme.Minimap()
	}
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	minimap.Render(dst, image.Point{}, minimap.Thumbnail(img, l), l, size.X, size.Y, st)
	if err := export.Save(c.output, dst, export.DefaultQuality); err != nil {
		return err
	}
	c.notifier.Export(c.output)
	return nil
}

func (c *minimapCmd) Program() string {
	return c.root.subcommand("minimap")
}

func (c *minimapCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *minimapCmd) Template() string {
	return "minimap.txt"
}
