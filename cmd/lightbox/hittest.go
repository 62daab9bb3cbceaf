package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/example/lightbox/internal/hittest"
	"github.com/example/lightbox/internal/session"
	"github.com/example/lightbox/internal/surface"
	"github.com/example/lightbox/internal/viewport"
)

type measurer struct{}

func (measurer) MeasureText(text string, size float64) float64 {
	return surface.MeasureText(text, size)
}

type hitTestCmd struct {
	*root
	fs          *flag.FlagSet
	sessionPath string
	imageID     string
	scale       float64
	offsetX     float64
	offsetY     float64
	point       viewport.Point
}

func parseHitTestCmd(args []string, r *root) (*hitTestCmd, error) {
	fs := flag.NewFlagSet("hittest", flag.ExitOnError)
	cmd := &hitTestCmd{root: r, fs: fs}
	fs.StringVar(&cmd.sessionPath, "session", "", "session file holding the annotations")
	fs.StringVar(&cmd.imageID, "image", "", "image id; defaults to the current image")
	fs.Float64Var(&cmd.scale, "scale", 0, "view scale; 0 uses the view stored in the session")
	fs.Float64Var(&cmd.offsetX, "offset-x", 0, "view x offset in screen pixels")
	fs.Float64Var(&cmd.offsetY, "offset-y", 0, "view y offset in screen pixels")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.sessionPath == "" || fs.NArg() != 2 {
		return nil, &UsageError{of: cmd}
	}
	x, errX := strconv.ParseFloat(fs.Arg(0), 64)
	y, errY := strconv.ParseFloat(fs.Arg(1), 64)
	if errX != nil || errY != nil {
		return nil, fmt.Errorf("invalid point %q %q", fs.Arg(0), fs.Arg(1))
	}
	cmd.point = viewport.Pt(x, y)
	return cmd, nil
}

func (c *hitTestCmd) Run() error {
	s, err := session.LoadFile(c.sessionPath)
	if err != nil {
		return err
	}
	img := s.Current()
	if c.imageID != "" {
		var ok bool
		if img, ok = s.Lookup(c.imageID); !ok {
			return fmt.Errorf("unknown image %q", c.imageID)
		}
	}
	if img == nil {
		return fmt.Errorf("%s: session has no images", c.sessionPath)
	}
	t := img.Transform
	if c.scale != 0 {
		t = viewport.Transform{Scale: c.scale, OffsetX: c.offsetX, OffsetY: c.offsetY}
	}
	id, ok := hittest.Test(c.point, t, img.Annotations.All(), measurer{})
	if !ok {
		fmt.Fprintln(c.out(), "none")
		return nil
	}
	fmt.Fprintln(c.out(), id)
	return nil
}

func (c *hitTestCmd) Program() string {
	return c.root.subcommand("hittest")
}

func (c *hitTestCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *hitTestCmd) Template() string {
	return "hittest.txt"
}
