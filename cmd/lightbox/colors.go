package main

import (
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/example/lightbox/internal/palette"
	"github.com/example/lightbox/internal/theme"
)

type colorsCmd struct {
	*root
	fs     *flag.FlagSet
	themes bool
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.BoolVar(&cmd.themes, "themes", false, "list the built-in themes instead of the palette")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	out := c.out()
	if c.themes {
		names := append([]string{"default"}, theme.Embedded()...)
		if c.config != nil {
			names = append(names, slices.Sorted(maps.Keys(c.config.Themes))...)
		}
		fmt.Fprintln(out, strings.Join(names, "\n"))
		return nil
	}

	current := palette.Default
	if c.config != nil && c.config.Color != "" {
		current = c.config.Color
	}
	fmt.Fprintln(out, "available palette colors (* marks the configured color):")
	for idx, entry := range palette.Entries() {
		marker := " "
		if strings.EqualFold(entry.Hex, current) {
			marker = "*"
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(out, "%s %d: %-8s %s %s\n", marker, idx+1, entry.Name, strings.ToUpper(entry.Hex), block)
	}
	return nil
}

func (c *colorsCmd) Program() string {
	return c.root.subcommand("colors")
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Template() string {
	return "colors.txt"
}
