package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/lightbox/internal/config"
	"github.com/example/lightbox/internal/notify"
	"github.com/example/lightbox/internal/theme"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	stdout       io.Writer
	notifier     *notify.Notifier
	config       *config.Config
	configPath   string
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("lightbox", flag.ExitOnError),
		program:  "lightbox",
		stdout:   os.Stdout,
		notifier: notify.New(notify.LoadPreferences()),
	}
	r.fs.StringVar(&r.configPath, "config", "", "path to a config.rc file")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", false, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, light, dark, or a theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the config file and environment, then applies any root
// flags that were given explicitly.
func (r *root) loadConfig() {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "notify-export":
			cfg.Notify.Export = r.exportAlerts
		case "notify-copy":
			cfg.Notify.Copy = r.copyAlerts
		case "theme":
			cfg.Theme = r.themeName
		}
	})
	r.config = cfg
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, cfg.Notify.Export)
		r.notifier.Enable(notify.EventCopy, cfg.Notify.Copy)
	}

	t, err := cfg.ThemeLoader().Load(cfg.Theme)
	if err != nil {
		if cfg.Theme != "" && cfg.Theme != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", cfg.Theme, err)
		}
		t = theme.Default()
	}
	r.activeTheme = t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "view":
		cmd, err = parseViewCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "hittest":
		cmd, err = parseHitTestCmd(subArgs, r)
	case "minimap":
		cmd, err = parseMinimapCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
