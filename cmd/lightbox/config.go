package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/lightbox/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) Run() error {
	switch sub := c.fs.Arg(0); sub {
	case "print":
		return c.runPrint()
	case "path":
		fmt.Fprintln(c.out(), c.path())
		return nil
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", sub)
	}
}

func (c *configCmd) runPrint() error {
	fmt.Fprint(c.out(), c.config.String())
	return nil
}

// path is the file the loader read from, or where a new one belongs.
func (c *configCmd) path() string {
	if c.configPath != "" {
		return c.configPath
	}
	if p := config.NewLoader(version, c.configPath).GetConfigPath(); p != "" {
		return p
	}
	return config.DefaultPath()
}

func (c *configCmd) runSave() error {
	path := c.path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(c.config.String()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}

func (c *configCmd) Program() string {
	return c.root.subcommand("config")
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Template() string {
	return "config.txt"
}
