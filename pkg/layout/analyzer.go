// Package layout infers the column layout of OCR pages and reconnects the
// lines that were wrapped or indented out of their column.
//
// A page goes through five stages, each depending on the previous one:
//
//  1. DetectColumns clusters the x origins of the lines into column anchors
//  2. Classify snaps every line to an anchor, or leaves it unclassified
//  3. CountLinesPerColumn decides whether the layout is trustworthy
//  4. Link attaches unclassified lines to the classified line before them
//  5. Stitch joins linked lines into complete texts
//
// Stages never modify the page; their results are collected in a
// PageLayout whose slices are indexed like the page's lines.
package layout

import (
	"context"
	"sync"

	"github.com/nypl-spacetime/hocr-detect-columns/pkg/hocr"
)

// PageLayout holds the analysis results of one page
type PageLayout struct {
	Columns           []int    `json:"columns,omitempty"` // Column anchors; nil when detection bailed out
	ColumnIndex       []int    `json:"-"`                 // Column per line or NoColumn
	LinesPerColumn    []int    `json:"linesPerColumn"`    // Classified lines per populated column
	MinLinesPerColumn bool     `json:"minLinesPerColumn"` // Whether the layout was trusted for linking
	Previous          []int    `json:"-"`                 // Previous line per line or NoLink
	Next              []int    `json:"-"`                 // Next line per line or NoLink
	CompleteText      []string `json:"-"`                 // Stitched text of chain heads, "" elsewhere
}

// Classified reports whether line i belongs to a column
func (pl PageLayout) Classified(i int) bool {
	return pl.ColumnIndex[i] != NoColumn
}

// HasPrevious reports whether line i continues another line
func (pl PageLayout) HasPrevious(i int) bool {
	return pl.Previous[i] != NoLink
}

// HasNext reports whether line i is continued by another line
func (pl PageLayout) HasNext(i int) bool {
	return pl.Next[i] != NoLink
}

// Option configures an Analyzer
type Option func(*Config)

// WithConfig replaces the whole configuration
func WithConfig(cfg Config) Option {
	return func(config *Config) {
		*config = cfg
	}
}

// WithColumnCount sets the expected number of columns
func WithColumnCount(count int) Option {
	return func(config *Config) {
		config.ColumnCount = count
	}
}

// WithMinLinesPerColumn sets the number of lines each column must exceed
func WithMinLinesPerColumn(lines int) Option {
	return func(config *Config) {
		config.MinLinesPerColumn = lines
	}
}

// WithCharacterWidth sets the anchor snapping tolerance in pixels
func WithCharacterWidth(width int) Option {
	return func(config *Config) {
		config.CharacterWidth = width
	}
}

// WithSortColumns numbers columns left to right
func WithSortColumns(sortColumns bool) Option {
	return func(config *Config) {
		config.SortColumns = sortColumns
	}
}

// WithWorkers sets how many pages AnalyzeDocument works on at once
func WithWorkers(workers int) Option {
	return func(config *Config) {
		config.Workers = workers
	}
}

// Analyzer runs the layout stages over pages
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer starting from DefaultConfig
func NewAnalyzer(opts ...Option) *Analyzer {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Analyzer{config: config}
}

// Config returns the configuration the analyzer runs with
func (a *Analyzer) Config() Config {
	return a.config
}

// AnalyzePage runs all stages over a single page
func (a *Analyzer) AnalyzePage(page hocr.Page) PageLayout {
	n := len(page.Lines)
	xs := make([]int, n)
	ys := make([]int, n)
	texts := make([]string, n)
	for i, line := range page.Lines {
		xs[i], ys[i] = line.Origin()
		texts[i] = line.Text
	}

	result := PageLayout{
		ColumnIndex: make([]int, n),
		Previous:    make([]int, n),
		Next:        make([]int, n),
	}
	for i := 0; i < n; i++ {
		result.ColumnIndex[i] = NoColumn
		result.Previous[i] = NoLink
		result.Next[i] = NoLink
	}

	result.Columns = DetectColumns(xs, a.config)
	if result.Columns != nil {
		result.ColumnIndex = Classify(xs, result.Columns, a.config.CharacterWidth)
	}

	result.LinesPerColumn, result.MinLinesPerColumn = CountLinesPerColumn(result.ColumnIndex, a.config)

	if result.MinLinesPerColumn {
		result.Previous, result.Next = Link(xs, ys, result.ColumnIndex)
	}

	result.CompleteText = Stitch(texts, result.ColumnIndex, result.Previous, result.Next)

	return result
}

// AnalyzeDocument analyzes pages concurrently. Results are in page order.
// It stops early and returns the context's error when ctx is cancelled.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, pages []hocr.Page) ([]PageLayout, error) {
	results := make([]PageLayout, len(pages))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(a.config.workers(), len(pages)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = a.AnalyzePage(pages[i])
			}
		}()
	}

	var err error
feed:
	for i := range pages {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case indices <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(indices)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}
