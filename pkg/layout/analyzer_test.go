package layout

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/nypl-spacetime/hocr-detect-columns/pkg/hocr"
)

func line(x, y int, text string) hocr.Line {
	return hocr.Line{
		Properties: hocr.Properties{BBox: &hocr.BBox{X: x, Y: y, X2: x + 300, Y2: y + 30}},
		Text:       text,
	}
}

// directoryPage is a two column page with a header and one wrapped line per column
func directoryPage(number int) hocr.Page {
	return hocr.Page{
		Number: number,
		Lines: []hocr.Line{
			line(350, 10, "DIRECTORY"),
			line(100, 100, "Abbott John, lab-"),
			line(100, 140, "Adams Mary, dress-"),
			line(130, 160, "maker, 4 Elm"),
			line(100, 180, "Allen Wm, clerk"),
			line(100, 220, "Ames Eliza, wid"),
			line(100, 260, "Archer Thos, tailor"),
			line(100, 300, "Arnold Geo, baker"),
			line(600, 100, "Baker Henry, mason"),
			line(600, 140, "Ball Saml, cooper"),
			line(600, 180, "Barnes Jas, shoemaker, h 12"),
			line(600, 220, "Bates Ann, tailoress"),
			line(600, 260, "Bell Robt, grocer"),
			line(600, 300, "Bird Wm, carter"),
			line(630, 190, "St. Louis"),
		},
	}
}

func TestAnalyzePage(t *testing.T) {
	analyzer := NewAnalyzer()
	result := analyzer.AnalyzePage(directoryPage(1))

	if !reflect.DeepEqual(result.Columns, []int{100, 600}) {
		t.Fatalf("Expected columns [100 600], got %v", result.Columns)
	}
	if !reflect.DeepEqual(result.LinesPerColumn, []int{6, 6}) {
		t.Errorf("Expected 6 lines per column, got %v", result.LinesPerColumn)
	}
	if !result.MinLinesPerColumn {
		t.Errorf("Expected the layout to be trusted")
	}

	for _, i := range []int{0, 3, 14} {
		if result.Classified(i) {
			t.Errorf("Expected line %d to be unclassified", i)
		}
	}

	if result.Previous[3] != 2 || result.Next[2] != 3 {
		t.Errorf("Expected line 3 to continue line 2, got previous %d next %d", result.Previous[3], result.Next[2])
	}
	if result.Previous[14] != 10 || result.Next[10] != 14 {
		t.Errorf("Expected line 14 to continue line 10, got previous %d next %d", result.Previous[14], result.Next[10])
	}
	if result.HasPrevious(0) || result.HasNext(0) {
		t.Errorf("Expected the header to stay unlinked")
	}

	tests := []struct {
		line int
		want string
	}{
		{0, ""},
		{1, "Abbott John, lab-"},
		{2, "Adams Mary, dressmaker, 4 Elm"},
		{3, ""},
		{10, "Barnes Jas, shoemaker, h 12 St. Louis"},
		{14, ""},
	}
	for _, tt := range tests {
		if got := result.CompleteText[tt.line]; got != tt.want {
			t.Errorf("Line %d: expected complete text %q, got %q", tt.line, tt.want, got)
		}
	}
}

func TestAnalyzePage_UntrustedLayoutIsNotLinked(t *testing.T) {
	analyzer := NewAnalyzer(WithMinLinesPerColumn(6))
	result := analyzer.AnalyzePage(directoryPage(1))

	if result.Columns == nil {
		t.Fatalf("Expected columns to be detected")
	}
	if result.MinLinesPerColumn {
		t.Errorf("Expected the layout not to be trusted")
	}
	for i := range result.Previous {
		if result.HasPrevious(i) || result.HasNext(i) {
			t.Errorf("Expected line %d to stay unlinked", i)
		}
	}
	if got := result.CompleteText[2]; got != "Adams Mary, dress-" {
		t.Errorf("Expected a classified line to keep its own text, got %q", got)
	}
}

func TestAnalyzePage_BailOut(t *testing.T) {
	page := hocr.Page{Lines: []hocr.Line{line(100, 100, "one"), line(600, 100, "two"), line(130, 120, "three")}}
	result := NewAnalyzer().AnalyzePage(page)

	if result.Columns != nil {
		t.Errorf("Expected no columns, got %v", result.Columns)
	}
	if result.MinLinesPerColumn || len(result.LinesPerColumn) != 0 {
		t.Errorf("Expected an empty untrusted layout, got %v %v", result.LinesPerColumn, result.MinLinesPerColumn)
	}
	for i := range page.Lines {
		if result.Classified(i) || result.HasPrevious(i) || result.HasNext(i) || result.CompleteText[i] != "" {
			t.Errorf("Expected line %d to carry no annotations", i)
		}
	}
}

func TestAnalyzePage_EmptyPage(t *testing.T) {
	result := NewAnalyzer().AnalyzePage(hocr.Page{})
	if result.Columns != nil || len(result.ColumnIndex) != 0 || len(result.CompleteText) != 0 {
		t.Errorf("Expected an empty layout, got %+v", result)
	}
}

func TestAnalyzePage_Idempotent(t *testing.T) {
	analyzer := NewAnalyzer(WithSortColumns(true))
	page := directoryPage(1)

	first := analyzer.AnalyzePage(page)
	second := analyzer.AnalyzePage(page)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(page, directoryPage(1)) {
		t.Errorf("Expected the page to be left untouched")
	}
}

func TestAnalyzeDocument(t *testing.T) {
	pages := make([]hocr.Page, 7)
	for i := range pages {
		pages[i] = directoryPage(i + 1)
	}
	pages[3] = hocr.Page{Number: 4, Lines: []hocr.Line{line(10, 10, "title")}}

	analyzer := NewAnalyzer(WithWorkers(3))
	results, err := analyzer.AnalyzeDocument(context.Background(), pages)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != len(pages) {
		t.Fatalf("Expected %d results, got %d", len(pages), len(results))
	}

	for i, page := range pages {
		if want := analyzer.AnalyzePage(page); !reflect.DeepEqual(results[i], want) {
			t.Errorf("Page %d: concurrent result differs from sequential one", i)
		}
	}
}

func TestAnalyzeDocument_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewAnalyzer().AnalyzeDocument(ctx, []hocr.Page{directoryPage(1)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if results != nil {
		t.Errorf("Expected no results, got %v", results)
	}
}

func TestNewAnalyzer_Options(t *testing.T) {
	analyzer := NewAnalyzer(
		WithColumnCount(3),
		WithCharacterWidth(8),
		WithMinLinesPerColumn(2),
		WithSortColumns(true),
		WithWorkers(4),
	)

	want := Config{ColumnCount: 3, MinLinesPerColumn: 2, CharacterWidth: 8, SortColumns: true, Workers: 4}
	if got := analyzer.Config(); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	if got := NewAnalyzer(WithConfig(want), WithColumnCount(1)).Config().ColumnCount; got != 1 {
		t.Errorf("Expected later options to win, got column count %d", got)
	}
}
