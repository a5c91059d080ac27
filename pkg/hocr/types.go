// Package hocr reads hOCR documents into pages of positioned text lines.
//
// Only the parts of hOCR needed for layout analysis are modeled: the pages
// (class ocr_page) and their text lines (class ocr_line and the line variants
// Tesseract emits). Element positions and other metadata live in the title
// attribute, which ParseTitle turns into a typed Properties record.
//
// Example usage:
//
//	pages, err := hocr.ReadFile("scan.hocr")
//	if err != nil {
//		return err
//	}
//	for _, page := range pages {
//		fmt.Println(page.Number, len(page.Lines))
//	}
package hocr

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// BBox is a pixel rectangle. X and Y are the top left corner, X2 and Y2
// the bottom right corner.
type BBox struct {
	X  int
	Y  int
	X2 int
	Y2 int
}

// Width returns the horizontal extent of the box
func (b BBox) Width() int {
	return b.X2 - b.X
}

// Height returns the vertical extent of the box
func (b BBox) Height() int {
	return b.Y2 - b.Y
}

// Array returns the box as [x, y, x2, y2]
func (b BBox) Array() [4]int {
	return [4]int{b.X, b.Y, b.X2, b.Y2}
}

// String returns the box in hOCR notation
func (b BBox) String() string {
	return fmt.Sprintf("%d %d %d %d", b.X, b.Y, b.X2, b.Y2)
}

// MarshalJSON encodes the box as a four element array
func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Array())
}

// Line is a single OCR text line.
type Line struct {
	ID         string     `json:"id,omitempty"` // Element id attribute, if any
	Properties Properties `json:"properties"`   // Parsed title attribute
	Text       string     `json:"text"`         // Trimmed, normalized text; never empty
}

// Origin returns the top left corner of the line's bounding box.
// Lines produced by Read always carry a bounding box.
func (l Line) Origin() (x, y int) {
	if l.Properties.BBox == nil {
		return 0, 0
	}
	return l.Properties.BBox.X, l.Properties.BBox.Y
}

// BBox returns the line's bounding box, or the zero box when absent
func (l Line) BBox() BBox {
	if l.Properties.BBox == nil {
		return BBox{}
	}
	return *l.Properties.BBox
}

// Page is one ocr_page element. Lines keeps document order and is the
// arena that layout annotations index into.
type Page struct {
	Number     int        `json:"number"`
	Properties Properties `json:"properties"`
	Lines      []Line     `json:"lines"`
}

// XOrigins returns the x coordinate of every line's bounding box, in line order
func (p Page) XOrigins() []int {
	xs := make([]int, len(p.Lines))
	for i, line := range p.Lines {
		xs[i], _ = line.Origin()
	}
	return xs
}

// ImagePath returns the path of the page's source image, resolved against
// baseDir when relative. It returns "" when the page names no image.
func (p Page) ImagePath(baseDir string) string {
	name := p.Properties.Image
	if name == "" {
		name = p.Properties.File
	}
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) || baseDir == "" {
		return name
	}
	return filepath.Join(baseDir, name)
}
