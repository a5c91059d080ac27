package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nypl-spacetime/hocr-detect-columns/pkg/hocr"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/layout"
)

type jsonDocument struct {
	Config layout.Config `json:"config"`
	Pages  []jsonPage    `json:"pages"`
}

type jsonPage struct {
	Number            int             `json:"number"`
	Properties        hocr.Properties `json:"properties"`
	Lines             []jsonLine      `json:"lines"`
	Columns           []int           `json:"columns,omitempty"`
	LinesPerColumn    []int           `json:"linesPerColumn"`
	MinLinesPerColumn bool            `json:"minLinesPerColumn"`
}

type jsonLine struct {
	ID                string          `json:"id,omitempty"`
	Properties        hocr.Properties `json:"properties"`
	Text              string          `json:"text"`
	ColumnIndex       *int            `json:"columnIndex,omitempty"`
	PreviousLineIndex *int            `json:"previousLineIndex,omitempty"`
	NextLineIndex     *int            `json:"nextLineIndex,omitempty"`
	CompleteText      string          `json:"completeText,omitempty"`
}

// JSONRenderer writes the whole analysis as one JSON document
type JSONRenderer struct {
	Indent string
}

func (r *JSONRenderer) Render(w io.Writer, doc Document) error {
	out := jsonDocument{
		Config: doc.Config,
		Pages:  make([]jsonPage, len(doc.Pages)),
	}
	for i, page := range doc.Pages {
		out.Pages[i] = toJSONPage(page)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", r.Indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func toJSONPage(page AnnotatedPage) jsonPage {
	pl := page.Layout
	out := jsonPage{
		Number:            page.Page.Number,
		Properties:        page.Page.Properties,
		Lines:             make([]jsonLine, len(page.Page.Lines)),
		Columns:           pl.Columns,
		LinesPerColumn:    pl.LinesPerColumn,
		MinLinesPerColumn: pl.MinLinesPerColumn,
	}
	if out.LinesPerColumn == nil {
		out.LinesPerColumn = []int{}
	}

	for i, line := range page.Page.Lines {
		jl := jsonLine{
			ID:           line.ID,
			Properties:   line.Properties,
			Text:         line.Text,
			CompleteText: pl.CompleteText[i],
		}
		if pl.Classified(i) {
			jl.ColumnIndex = intPtr(pl.ColumnIndex[i])
		}
		if pl.HasPrevious(i) {
			jl.PreviousLineIndex = intPtr(pl.Previous[i])
		}
		if pl.HasNext(i) {
			jl.NextLineIndex = intPtr(pl.Next[i])
		}
		out.Lines[i] = jl
	}

	return out
}

func intPtr(v int) *int {
	return &v
}
