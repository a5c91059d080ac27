package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
)

//go:embed templates/visualization.html.tmpl
var visualizationTemplate string

var visualization = template.Must(template.New("visualization").Parse(visualizationTemplate))

// columnColors cycles over columns; unclassifiedColor marks the rest
var columnColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

const unclassifiedColor = "#999999"

type htmlDocument struct {
	Source string
	Pages  []htmlPage
}

type htmlPage struct {
	Number         int
	Width, Height  int
	Columns        []int
	LinesPerColumn []int
	Trusted        bool
	Boxes          []htmlBox
	Links          []htmlLink
	CompleteTexts  []string
}

type htmlBox struct {
	X, Y, Width, Height int
	Color               string
	Text                string
	Column              int // 1-based, 0 when unclassified
}

type htmlLink struct {
	X1, Y1, X2, Y2 int
}

// HTMLRenderer writes a standalone HTML page drawing every line box,
// colored by column, with arrows from each line to its continuation
type HTMLRenderer struct{}

func (r *HTMLRenderer) Render(w io.Writer, doc Document) error {
	baseDir := ""
	if doc.Source != "" {
		baseDir = filepath.Dir(doc.Source)
	}

	data := htmlDocument{
		Source: doc.Source,
		Pages:  make([]htmlPage, len(doc.Pages)),
	}
	for i, page := range doc.Pages {
		data.Pages[i] = toHTMLPage(page, baseDir)
	}

	if err := visualization.Execute(w, data); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

func toHTMLPage(page AnnotatedPage, baseDir string) htmlPage {
	pl := page.Layout
	lines := page.Page.Lines

	out := htmlPage{
		Number:         page.Page.Number,
		Columns:        pl.Columns,
		LinesPerColumn: pl.LinesPerColumn,
		Trusted:        pl.MinLinesPerColumn,
		Boxes:          make([]htmlBox, len(lines)),
	}

	width, height, ok := page.Page.Size(baseDir)
	for i, line := range lines {
		bbox := line.BBox()
		if !ok {
			width = max(width, bbox.X2)
			height = max(height, bbox.Y2)
		}

		box := htmlBox{
			X:      bbox.X,
			Y:      bbox.Y,
			Width:  bbox.Width(),
			Height: bbox.Height(),
			Color:  unclassifiedColor,
			Text:   line.Text,
		}
		if pl.Classified(i) {
			box.Column = pl.ColumnIndex[i] + 1
			box.Color = columnColors[pl.ColumnIndex[i]%len(columnColors)]
		}
		out.Boxes[i] = box

		if pl.HasNext(i) {
			x1, y1 := line.Origin()
			x2, y2 := lines[pl.Next[i]].Origin()
			out.Links = append(out.Links, htmlLink{X1: x1, Y1: y1, X2: x2, Y2: y2})
		}
		if text := pl.CompleteText[i]; text != "" {
			out.CompleteTexts = append(out.CompleteTexts, text)
		}
	}
	out.Width, out.Height = width, height

	return out
}
