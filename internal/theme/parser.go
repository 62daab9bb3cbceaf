package theme

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/example/lightbox/internal/palette"
)

// Parse reads a theme definition from an io.Reader.
// The format is one pair per line: Key: #RRGGBB or #RRGGBBAA
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if err := SetField(t, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return nil, err
		}
	}
	return t, scanner.Err()
}

// SetField applies one key/value pair. Unknown keys are ignored for
// forward compatibility.
func SetField(t *Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	if _, ok := t.Get(key); !ok {
		return nil
	}
	col, err := palette.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	t.Set(key, col)
	return nil
}

// Format writes t in the format Parse reads.
func Format(t *Theme) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", t.Name)
	for _, name := range ColorFields() {
		c, _ := t.Get(name)
		fmt.Fprintf(&sb, "%s: %s\n", name, palette.Hex(c))
	}
	return sb.String()
}

func equalFold(a, b string) bool { return strings.EqualFold(a, b) }
