package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nypl-spacetime/hocr-detect-columns/pkg/hocr"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/layout"
)

// directoryHOCR returns a page with two columns of six lines and one
// indented continuation line
func directoryHOCR() string {
	var sb strings.Builder
	sb.WriteString(`<html><body><div class="ocr_page" title="bbox 0 0 1000 800; ppageno 0">`)
	line := func(x, y int, text string) {
		fmt.Fprintf(&sb, `<span class="ocr_line" title="bbox %d %d %d %d">%s</span>`, x, y, x+250, y+30, text)
	}
	for i, name := range []string{"Abbott", "Adams", "Allen", "Ames", "Archer", "Arnold"} {
		line(100, 100+40*i, name+" John, lab-")
	}
	line(130, 110, "orer, h 9 Oak")
	for i, name := range []string{"Baker", "Ball", "Barnes", "Bates", "Bell", "Bird"} {
		line(600, 100+40*i, name+" Ann, milliner")
	}
	sb.WriteString(`</div></body></html>`)
	return sb.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scan.hocr", directoryHOCR())

	doc, err := AnalyzeFile(context.Background(), layout.NewAnalyzer(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if doc.Source != path || len(doc.Pages) != 1 {
		t.Fatalf("Unexpected document: %s with %d pages", doc.Source, len(doc.Pages))
	}

	pl := doc.Pages[0].Layout
	if !reflect.DeepEqual(pl.Columns, []int{100, 600}) {
		t.Errorf("Expected columns [100 600], got %v", pl.Columns)
	}
	if !pl.MinLinesPerColumn {
		t.Errorf("Expected the layout to be trusted")
	}
	if got := pl.CompleteText[0]; got != "Abbott John, laborer, h 9 Oak" {
		t.Errorf("Expected the first entry to be stitched, got %q", got)
	}
}

func TestAnalyzeFile_Malformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.hocr",
		`<div class="ocr_page"><span class="ocr_line" title="x_size 12">text</span></div>`)

	_, err := AnalyzeFile(context.Background(), layout.NewAnalyzer(), path)
	var malformed *hocr.MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected a MalformedInputError, got %v", err)
	}
	if malformed.Field != "bbox" {
		t.Errorf("Expected the bbox field to be reported, got %q", malformed.Field)
	}
}

func TestAnalyzeFile_Cancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scan.hocr", directoryHOCR())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := AnalyzeFile(ctx, layout.NewAnalyzer(), path); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
