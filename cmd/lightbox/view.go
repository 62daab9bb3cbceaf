package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/lightbox/internal/clipboard"
	"github.com/example/lightbox/internal/export"
	"github.com/example/lightbox/internal/palette"
	"github.com/example/lightbox/internal/session"
	"github.com/example/lightbox/internal/viewer"
)

type viewCmd struct {
	*root
	fs          *flag.FlagSet
	sessionPath string
	readOnly    bool
	minimap     bool
	color       string
	paste       bool
	images      []string
}

var readClipboardImage = clipboard.ReadImage

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	cmd := &viewCmd{root: r, fs: fs}
	fs.StringVar(&cmd.sessionPath, "session", "", "session file to open; created on save if missing")
	fs.BoolVar(&cmd.readOnly, "read-only", r.config.ReadOnly, "disable creating and deleting annotations")
	fs.BoolVar(&cmd.minimap, "minimap", r.config.Minimap.Enabled, "show the minimap")
	fs.StringVar(&cmd.color, "color", r.config.Color, "initial annotation colour (palette name or hex)")
	fs.BoolVar(&cmd.paste, "from-clipboard", false, "add the image on the clipboard to the series")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cmd.images = fs.Args()
	if cmd.sessionPath == "" && len(cmd.images) == 0 && !cmd.paste {
		return nil, &UsageError{of: cmd}
	}
	if _, err := palette.Lookup(cmd.color); err != nil {
		return nil, err
	}
	return cmd, nil
}

// pasteImage saves the clipboard image into the export directory so the
// session can refer to it by path.
func (c *viewCmd) pasteImage() (string, error) {
	img, err := readClipboardImage()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard image: %w", err)
	}
	dir := c.config.ExportDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("clipboard-%d.png", time.Now().Unix()))
	if err := export.Save(path, img, 0); err != nil {
		return "", err
	}
	return path, nil
}

// session opens the session file, if any, and appends the image arguments.
// It also returns the directory relative sources resolve against.
func (c *viewCmd) session() (*session.Session, string, error) {
	paths := append([]string(nil), c.images...)
	if c.paste {
		p, err := c.pasteImage()
		if err != nil {
			return nil, "", err
		}
		paths = append(paths, p)
	}
	if c.sessionPath == "" {
		s := session.New()
		return s, ".", addImages(s, paths)
	}
	s, err := openSession(c.sessionPath)
	if err != nil {
		return nil, "", err
	}
	if err := addImages(s, paths); err != nil {
		return nil, "", err
	}
	return s, filepath.Dir(c.sessionPath), nil
}

func (c *viewCmd) Run() error {
	s, base, err := c.session()
	if err != nil {
		return err
	}
	if s.Len() == 0 {
		return &UsageError{of: c}
	}
	images, err := decodeImages(s, base)
	if err != nil {
		return err
	}
	cfg := *c.config
	cfg.ReadOnly = c.readOnly
	cfg.Minimap.Enabled = c.minimap
	cfg.Color, _ = palette.Lookup(c.color)

	v, err := viewer.New(viewer.Options{
		Session:     s,
		Images:      images,
		SessionPath: c.sessionPath,
		Fit:         true,
		Config:      &cfg,
		Theme:       c.activeTheme,
		Notifier:    c.notifier,
	})
	if err != nil {
		return err
	}
	v.Run()
	return nil
}

func (c *viewCmd) Program() string {
	return c.root.subcommand("view")
}

func (c *viewCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *viewCmd) Template() string {
	return "view.txt"
}
