package internal

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/nypl-spacetime/hocr-detect-columns/pkg/render"
)

// ErrUnknownColor is returned for color names that are neither predefined nor #rrggbb
var ErrUnknownColor = errors.New("unknown color")

// Color interface defines how to colorize text
type Color interface {
	FgString(text string) string
	GetFgColor() color.Attribute
}

// ColorWrapper wraps fatih/color functionality
type ColorWrapper struct {
	colorFunc func(...interface{}) string
	colorAttr color.Attribute
	isRGB     bool
	r, g, b   uint8
}

// FgString returns a string with the color applied
func (c ColorWrapper) FgString(text string) string {
	if c.isRGB {
		if color.NoColor {
			return text
		}
		// fatih/color has no truecolor attribute
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.r, c.g, c.b, text)
	}
	return c.colorFunc(text)
}

// GetFgColor returns the color.Attribute for this color
func (c ColorWrapper) GetFgColor() color.Attribute {
	return c.colorAttr
}

var rgbRegex = regexp.MustCompile(`^#([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

var (
	colorCache = make(map[string]Color, 32)
	colorMutex sync.RWMutex
)

func predefined(attr color.Attribute) ColorWrapper {
	return ColorWrapper{
		colorFunc: color.New(attr).SprintFunc(),
		colorAttr: attr,
	}
}

var predefinedColors = map[string]ColorWrapper{
	"black":   predefined(color.FgBlack),
	"red":     predefined(color.FgRed),
	"green":   predefined(color.FgGreen),
	"yellow":  predefined(color.FgYellow),
	"blue":    predefined(color.FgBlue),
	"magenta": predefined(color.FgMagenta),
	"cyan":    predefined(color.FgCyan),
	"white":   predefined(color.FgWhite),
	"gray":    predefined(color.FgHiBlack),
	"grey":    predefined(color.FgHiBlack),
	"default": predefined(color.Reset),
}

// ParseColor parses a predefined color name or a #rrggbb value
func ParseColor(name string) (Color, error) {
	// Check cache first
	colorMutex.RLock()
	if cached, exists := colorCache[name]; exists {
		colorMutex.RUnlock()
		return cached, nil
	}
	colorMutex.RUnlock()

	var result Color

	if m := rgbRegex.FindStringSubmatch(name); m != nil {
		r, _ := strconv.ParseUint(m[1], 16, 8)
		g, _ := strconv.ParseUint(m[2], 16, 8)
		b, _ := strconv.ParseUint(m[3], 16, 8)
		result = ColorWrapper{
			colorFunc: color.New(color.FgWhite).SprintFunc(),
			colorAttr: color.FgWhite,
			isRGB:     true,
			r:         uint8(r),
			g:         uint8(g),
			b:         uint8(b),
		}
	} else {
		lowerName := strings.ToLower(name)
		predefined, exists := predefinedColors[lowerName]
		if !exists {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		result = predefined
	}

	colorMutex.Lock()
	colorCache[name] = result
	colorMutex.Unlock()

	return result, nil
}

// ColorConfig names the colors of the text report. Empty fields keep the
// default color.
type ColorConfig struct {
	Text         string `json:"text" toml:"text"`
	X            string `json:"x" toml:"x"`
	Column       string `json:"column" toml:"column"`
	Link         string `json:"link" toml:"link"`
	Complete     string `json:"complete" toml:"complete"`
	Properties   string `json:"properties" toml:"properties"`
	Unclassified string `json:"unclassified" toml:"unclassified"`
}

// Palette resolves the configured colors on top of render.DefaultPalette
func (cc ColorConfig) Palette() (render.Palette, error) {
	palette := render.DefaultPalette()

	fields := []struct {
		key    string
		name   string
		target *render.Colorizer
	}{
		{"text", cc.Text, &palette.Text},
		{"x", cc.X, &palette.X},
		{"column", cc.Column, &palette.Column},
		{"link", cc.Link, &palette.Link},
		{"complete", cc.Complete, &palette.Complete},
		{"properties", cc.Properties, &palette.Properties},
		{"unclassified", cc.Unclassified, &palette.Unclassified},
	}

	var errs []error
	for _, field := range fields {
		if field.name == "" {
			continue
		}
		c, err := ParseColor(field.name)
		if err != nil {
			errs = append(errs, fmt.Errorf("colors.%s: %w", field.key, err))
			continue
		}
		*field.target = c
	}

	return palette, errors.Join(errs...)
}
