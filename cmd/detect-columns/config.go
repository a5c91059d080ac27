package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/nypl-spacetime/hocr-detect-columns/internal"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/layout"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/render"
)

type Config struct {
	Layout layout.Overrides     `toml:"layout"`
	Colors internal.ColorConfig `toml:"colors"`
	Lines  LinesConfig          `toml:"lines"`
}

type LinesConfig struct {
	MinLength   *int  `json:"minLength" toml:"min_length"`
	Capitalized *bool `json:"capitalized" toml:"capitalized"`
}

// jsonConfig is the JSON layout of Config: layout fields sit at the top
// level, as in {"columnCount": 3, "characterWidth": 10}
type jsonConfig struct {
	layout.Overrides
	Colors internal.ColorConfig `json:"colors"`
	Lines  LinesConfig          `json:"lines"`
}

// DefaultConfigPath returns the config file read when --config is not given
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// LoadConfigFromFile reads a TOML config file, or a JSON one when the name
// ends in .json. A missing file yields an empty config unless required.
func LoadConfigFromFile(path string, required bool) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !required {
		return config, nil // no config file, return defaults
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading JSON config: %w", err)
		}

		var jc jsonConfig
		if err := json.Unmarshal(data, &jc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config: %w", err)
		}
		config.Layout = jc.Overrides
		config.Colors = jc.Colors
		config.Lines = jc.Lines
	} else if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) validate() error {
	var errs []error
	if err := layout.Merge(layout.DefaultConfig(), c.Layout).Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Lines.MinLength != nil && *c.Lines.MinLength < 0 {
		errs = append(errs, fmt.Errorf("lines.min_length must not be negative, got %d", *c.Lines.MinLength))
	}
	return errors.Join(errs...)
}

// RenderOptions resolves the renderer options on top of the defaults
func (c *Config) RenderOptions() (render.Options, error) {
	opts := render.DefaultOptions()

	palette, err := c.Colors.Palette()
	if err != nil {
		return opts, err
	}
	opts.Palette = palette

	if c.Lines.MinLength != nil {
		opts.Lines.MinLength = *c.Lines.MinLength
	}
	if c.Lines.Capitalized != nil {
		opts.Lines.Capitalized = *c.Lines.Capitalized
	}

	return opts, nil
}
