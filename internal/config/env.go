package config

import (
	"fmt"
	"strconv"

	"github.com/kelseyhightower/envconfig"

	"github.com/example/lightbox/internal/palette"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LIGHTBOX"

// Env holds overrides read from LIGHTBOX_* variables. Empty means unset.
type Env struct {
	Theme     string `envconfig:"THEME"`
	ExportDir string `envconfig:"EXPORT_DIR"`
	ReadOnly  string `envconfig:"READ_ONLY"`
	Color     string `envconfig:"COLOR"`
}

// LoadEnv reads the environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Apply copies the set overrides onto cfg.
func (e Env) Apply(cfg *Config) error {
	if e.Theme != "" {
		cfg.Theme = e.Theme
	}
	if e.ExportDir != "" {
		cfg.ExportDir = e.ExportDir
	}
	if e.ReadOnly != "" {
		b, err := strconv.ParseBool(e.ReadOnly)
		if err != nil {
			return fmt.Errorf("%s_READ_ONLY: %w", EnvPrefix, err)
		}
		cfg.ReadOnly = b
	}
	if e.Color != "" {
		hex, err := palette.Lookup(e.Color)
		if err != nil {
			return fmt.Errorf("%s_COLOR: %w", EnvPrefix, err)
		}
		cfg.Color = hex
	}
	return nil
}
