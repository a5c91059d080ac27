package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Colorizer colors text for terminal output
type Colorizer interface {
	FgString(text string) string
}

type attrColor struct {
	c *color.Color
}

func (a attrColor) FgString(text string) string {
	return a.c.Sprint(text)
}

// Attr returns a Colorizer for a fatih/color attribute
func Attr(attr color.Attribute) Colorizer {
	return attrColor{c: color.New(attr)}
}

// Palette holds the colors of the text report
type Palette struct {
	Text         Colorizer // Classified line text
	X            Colorizer // X coordinate of a line
	Column       Colorizer // 1-based column number
	Link         Colorizer // Continuation and complete text markers
	Complete     Colorizer // Complete text
	Properties   Colorizer // Page properties
	Unclassified Colorizer // Text of lines outside every column
}

// DefaultPalette returns the standard report colors
func DefaultPalette() Palette {
	return Palette{
		Text:         Attr(color.FgGreen),
		X:            Attr(color.FgYellow),
		Column:       Attr(color.FgBlue),
		Link:         Attr(color.FgCyan),
		Complete:     Attr(color.FgHiBlack),
		Properties:   Attr(color.FgHiBlack),
		Unclassified: Attr(color.FgRed),
	}
}

// TextRenderer writes a colored, human readable report of every page
type TextRenderer struct {
	palette Palette
}

// NewTextRenderer creates a report renderer with the given colors
func NewTextRenderer(palette Palette) *TextRenderer {
	return &TextRenderer{palette: palette}
}

func (r *TextRenderer) Render(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	for _, page := range doc.Pages {
		r.renderPage(bw, page)
	}
	return bw.Flush()
}

// RenderPage writes the report of a single page
func (r *TextRenderer) RenderPage(w io.Writer, page AnnotatedPage) error {
	bw := bufio.NewWriter(w)
	r.renderPage(bw, page)
	return bw.Flush()
}

func (r *TextRenderer) renderPage(w *bufio.Writer, page AnnotatedPage) {
	p := r.palette
	lines := page.Page.Lines
	pl := page.Layout

	fmt.Fprintf(w, "Page: %d\n", page.Page.Number)
	for _, pair := range page.Page.Properties.Pairs() {
		fmt.Fprintln(w, p.Properties.FgString(fmt.Sprintf("  %s: %s", pair.Key, pair.Value)))
	}

	if pl.Columns != nil {
		anchors := make([]string, len(pl.Columns))
		for i, x := range pl.Columns {
			anchors[i] = strconv.Itoa(x)
		}
		fmt.Fprintf(w, "  X coordinates of columns: %s\n", strings.Join(anchors, ", "))
	} else {
		fmt.Fprintln(w, "  X coordinates of columns: no columns found")
	}
	fmt.Fprintf(w, "Lines: %s %s %s\n", p.Text.FgString("text"), p.X.FgString("X coordinate"), p.Column.FgString("column"))

	// pad texts to a common display width so coordinates line up
	width := 0
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line.Text))
	}
	pad := func(text string) string {
		return runewidth.FillRight(text, width)
	}

	for i, line := range lines {
		x, _ := line.Origin()

		switch {
		case pl.Classified(i):
			fmt.Fprintln(w, p.Text.FgString(pad(line.Text)), p.X.FgString(strconv.Itoa(x)), p.Column.FgString(strconv.Itoa(pl.ColumnIndex[i]+1)))

			if pl.HasNext(i) {
				next := lines[pl.Next[i]]
				nextX, _ := next.Origin()
				fmt.Fprintln(w, p.Link.FgString("↪   "), p.Text.FgString(next.Text), p.X.FgString(strconv.Itoa(nextX)))

				if text := pl.CompleteText[i]; text != "" {
					fmt.Fprintln(w, p.Link.FgString("=   "), p.Complete.FgString(text))
				}
			}
		case !pl.HasPrevious(i):
			fmt.Fprintln(w, p.Unclassified.FgString(pad(line.Text)), p.X.FgString(strconv.Itoa(x)))
		}
	}
}
