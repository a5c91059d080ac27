package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nypl-spacetime/hocr-detect-columns/pkg/hocr"
)

// Record is one line of NDJSON output
type Record struct {
	PageNumber  int       `json:"pageNum"`
	BoundingBox hocr.BBox `json:"bbox"`
	Text        string    `json:"text"`
	ColumnIndex *int      `json:"columnIndex,omitempty"`
}

// Records returns the records of a page: one for every classified line and
// for every unclassified line that does not continue another line. Text is
// the complete text when there is one.
func Records(page AnnotatedPage) []Record {
	pl := page.Layout
	var records []Record

	for i, line := range page.Page.Lines {
		if !pl.Classified(i) && pl.HasPrevious(i) {
			continue
		}

		record := Record{
			PageNumber:  page.Page.Number,
			BoundingBox: line.BBox(),
			Text:        line.Text,
		}
		if text := pl.CompleteText[i]; text != "" {
			record.Text = text
		}
		if pl.Classified(i) {
			record.ColumnIndex = intPtr(pl.ColumnIndex[i])
		}
		records = append(records, record)
	}

	return records
}

// NDJSONRenderer writes one JSON record per line
type NDJSONRenderer struct{}

func (r *NDJSONRenderer) Render(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	for _, page := range doc.Pages {
		for _, record := range Records(page) {
			if err := enc.Encode(record); err != nil {
				return fmt.Errorf("encoding page %d: %w", page.Page.Number, err)
			}
		}
	}

	return bw.Flush()
}
