package e2e

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nypl-spacetime/hocr-detect-columns/test/e2e/framework"
)

// directoryPage returns an hOCR page with two columns of six entries. The
// first entry wraps onto an indented line.
func directoryPage() string {
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

func TestOutputModes(t *testing.T) {
	f := framework.NewFramework()

	testCases := []framework.TestCase{
		{
			Name:           "Log - Column Anchors",
			Input:          directoryPage(),
			Args:           []string{},
			ExpectedOutput: "X coordinates of columns: 100, 600",
		},
		{
			Name:           "Lines - Stitched Entry",
			Input:          directoryPage(),
			Args:           []string{"-m", "lines"},
			ExpectedOutput: "Abbott John, laborer, h 9 Oak",
		},
		{
			Name:           "NDJSON - Complete Text",
			Input:          directoryPage(),
			Args:           []string{"--mode", "ndjson"},
			ExpectedOutput: `"text":"Abbott John, laborer, h 9 Oak"`,
		},
		{
			Name:           "JSON - Config",
			Input:          directoryPage(),
			Args:           []string{"-m", "json", "--columns", "2"},
			ExpectedOutput: `"columnCount": 2`,
		},
		{
			Name:           "HTML - SVG",
			Input:          directoryPage(),
			Args:           []string{"-m", "html"},
			ExpectedOutput: "<svg",
		},
		{
			Name:           "Untrusted Layout - No Links",
			Input:          directoryPage(),
			Args:           []string{"-m", "ndjson", "--min-lines", "6"},
			ExpectedOutput: `"text":"Abbott John, lab-"`,
		},
	}

	results := f.RunTests(testCases)
	f.PrintSummary(results)

	for _, result := range results {
		if !result.Passed {
			t.Errorf("Test '%s' failed: %s\nOutput: %q", result.Name, result.Error, result.Output)
		}
	}
}

func TestErrors(t *testing.T) {
	f := framework.NewFramework()

	testCases := []framework.TestCase{
		{
			Name:           "Unknown Mode",
			Input:          directoryPage(),
			Args:           []string{"-m", "xml"},
			ExpectedOutput: "unknown output mode",
		},
		{
			Name:           "Missing Bounding Box",
			Input:          `<div class="ocr_page"><span class="ocr_line" title="x_size 12">text</span></div>`,
			Args:           []string{},
			ExpectedOutput: "bbox",
		},
		{
			Name:           "No Arguments",
			Args:           []string{},
			ExpectedOutput: "requires at least one hOCR file",
		},
		{
			Name:           "Invalid Column Count",
			Input:          directoryPage(),
			Args:           []string{"--columns", "0"},
			ExpectedOutput: "column count must be at least 1",
		},
	}

	results := f.RunTests(testCases)
	f.PrintSummary(results)

	for _, result := range results {
		if !result.Passed {
			t.Errorf("Test '%s' failed: %s\nOutput: %q", result.Name, result.Error, result.Output)
		}
	}
}

func TestViewerQuits(t *testing.T) {
	f := framework.NewFramework()

	result := f.RunTest(framework.TestCase{
		Name:           "Viewer - Status Bar",
		Input:          directoryPage(),
		Args:           []string{"--view"},
		Keys:           "q",
		ExpectedOutput: "page 1/1",
	})
	if !result.Passed {
		t.Errorf("Test failed: %s", result.Error)
	}
}
