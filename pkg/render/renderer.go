// Package render writes analyzed hOCR documents in the supported output
// formats: a colored text report, JSON, newline delimited JSON, an HTML
// visualization and a plain list of complete lines.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nypl-spacetime/hocr-detect-columns/pkg/hocr"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/layout"
)

// Output modes
const (
	ModeLog    = "log"
	ModeJSON   = "json"
	ModeNDJSON = "ndjson"
	ModeHTML   = "html"
	ModeLines  = "lines"
)

// Modes lists every supported output mode
var Modes = []string{ModeLog, ModeJSON, ModeNDJSON, ModeHTML, ModeLines}

// ErrUnknownMode is returned by New for an unsupported mode
var ErrUnknownMode = errors.New("unknown output mode")

// AnnotatedPage pairs a page with its layout analysis
type AnnotatedPage struct {
	Page   hocr.Page
	Layout layout.PageLayout
}

// Document is everything a renderer needs
type Document struct {
	Config layout.Config   // Configuration the pages were analyzed with
	Source string          // Path of the hOCR file, used to resolve page images
	Pages  []AnnotatedPage // Pages in document order
}

// NewDocument pairs pages with their layouts, which must be index aligned
func NewDocument(source string, cfg layout.Config, pages []hocr.Page, layouts []layout.PageLayout) Document {
	doc := Document{
		Config: cfg,
		Source: source,
		Pages:  make([]AnnotatedPage, len(pages)),
	}
	for i := range pages {
		doc.Pages[i] = AnnotatedPage{Page: pages[i], Layout: layouts[i]}
	}
	return doc
}

// Renderer writes a document to w
type Renderer interface {
	Render(w io.Writer, doc Document) error
}

// Options configures the renderers; the zero value is not usable, start
// from DefaultOptions
type Options struct {
	Palette Palette     // Colors of the log renderer
	Lines   LineOptions // Filters of the lines renderer
}

// DefaultOptions returns the default palette and line filters
func DefaultOptions() Options {
	return Options{
		Palette: DefaultPalette(),
		Lines:   DefaultLineOptions(),
	}
}

// New returns the renderer for mode
func New(mode string, opts Options) (Renderer, error) {
	switch strings.ToLower(mode) {
	case ModeLog:
		return &TextRenderer{palette: opts.Palette}, nil
	case ModeJSON:
		return &JSONRenderer{Indent: "  "}, nil
	case ModeNDJSON:
		return &NDJSONRenderer{}, nil
	case ModeHTML:
		return &HTMLRenderer{}, nil
	case ModeLines:
		return &LinesRenderer{options: opts.Lines}, nil
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownMode, mode, strings.Join(Modes, ", "))
	}
}

// chainText joins the texts of the chain starting at line i
func chainText(page AnnotatedPage, i int) string {
	chain := layout.Chain(page.Layout.Next, i)
	parts := make([]string, len(chain))
	for k, j := range chain {
		parts[k] = page.Page.Lines[j].Text
	}
	return layout.JoinLines(parts)
}
