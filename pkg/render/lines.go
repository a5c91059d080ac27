package render

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

// DefaultMinLength is the default minimum number of characters of a listed line
const DefaultMinLength = 20

// LineOptions filters the output of the lines renderer
type LineOptions struct {
	MinLength   int  `json:"minLength" toml:"min_length"`     // Minimum number of characters
	Capitalized bool `json:"capitalized" toml:"capitalized"` // Require an uppercase first letter
}

// DefaultLineOptions keeps lines of at least DefaultMinLength characters
// that start with an uppercase letter
func DefaultLineOptions() LineOptions {
	return LineOptions{
		MinLength:   DefaultMinLength,
		Capitalized: true,
	}
}

// Keep reports whether text passes the filters
func (o LineOptions) Keep(text string) bool {
	if utf8.RuneCountInString(text) < o.MinLength {
		return false
	}
	if o.Capitalized {
		first, _ := utf8.DecodeRuneInString(text)
		return unicode.IsUpper(first)
	}
	return true
}

// Lines returns the joined text of every chain on the page that passes the
// filters. Chains start at each line that does not continue another line,
// so classified and unclassified heads are both listed.
func Lines(page AnnotatedPage, opts LineOptions) []string {
	var lines []string
	for i := range page.Page.Lines {
		if page.Layout.HasPrevious(i) {
			continue
		}
		if text := chainText(page, i); opts.Keep(text) {
			lines = append(lines, text)
		}
	}
	return lines
}

// LinesRenderer writes one complete line of text per output line
type LinesRenderer struct {
	options LineOptions
}

func (r *LinesRenderer) Render(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	for _, page := range doc.Pages {
		for _, line := range Lines(page, r.options) {
			if _, err := fmt.Fprintln(bw, line); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
