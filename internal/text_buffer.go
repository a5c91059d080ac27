package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/leaanthony/go-ansi-parser"
	"github.com/mattn/go-runewidth"
)

const extraCapacity = 16

type TextCell struct {
	Rune  rune
	Style tcell.Style
}

// TextBuffer holds styled text rows and draws them onto a screen,
// wrapping rows wider than the screen
type TextBuffer struct {
	content [][]TextCell // [row][column] -> TextCell
	width   int          // Terminal width
	height  int          // Terminal height
}

func (tb *TextBuffer) String() string {
	var sb strings.Builder
	for y, row := range tb.content {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			if cell.Rune != 0 {
				sb.WriteRune(cell.Rune)
			}
		}
	}
	return sb.String()
}

func NewTextBuffer(width, height int) *TextBuffer {
	return &TextBuffer{
		width:  width,
		height: height,
	}
}

// Resize changes the screen size the buffer wraps to
func (tb *TextBuffer) Resize(width, height int) {
	tb.width = width
	tb.height = height
}

// Clear clears the buffer
func (tb *TextBuffer) Clear() {
	tb.content = nil
}

// SetCell sets a character at the specified coordinates, growing the buffer as needed
func (tb *TextBuffer) SetCell(x, y int, r rune, style tcell.Style) {
	for len(tb.content) <= y {
		tb.content = append(tb.content, nil)
	}

	if len(tb.content[y]) <= x {
		newRow := make([]TextCell, x+extraCapacity)
		copy(newRow, tb.content[y])
		tb.content[y] = newRow
	}

	tb.content[y][x] = TextCell{
		Rune:  r,
		Style: style,
	}
}

// SetString sets a string at the specified coordinates
func (tb *TextBuffer) SetString(x, y int, text string, style tcell.Style) int {
	currentX := x
	for _, r := range text {
		tb.SetCell(currentX, y, r, style)

		// Calculate the width of the current rune
		width := runewidth.RuneWidth(r)
		if width <= 0 {
			width = 1
		}
		currentX += width
	}
	return currentX
}

// SetANSI replaces the buffer content with text carrying ANSI color
// sequences, one row per line
func (tb *TextBuffer) SetANSI(text string) {
	tb.Clear()
	for y, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		tb.setANSILine(y, line)
	}
}

func (tb *TextBuffer) setANSILine(y int, line string) {
	// keep empty rows
	for len(tb.content) <= y {
		tb.content = append(tb.content, nil)
	}

	elements, err := ansi.Parse(line)
	if err != nil {
		tb.SetString(0, y, line, tcell.StyleDefault)
		return
	}

	x := 0
	for _, element := range elements {
		if element.Label == "" {
			continue
		}
		x = tb.SetString(x, y, element.Label, styleFromANSI(element))
	}
}

// styleFromANSI converts a parsed ANSI element to a tcell style
func styleFromANSI(element *ansi.StyledText) tcell.Style {
	style := tcell.StyleDefault.
		Bold(element.Bold()).
		Underline(element.Underlined()).
		Italic(element.Italic())

	if element.FgCol != nil {
		rgb := element.FgCol.Rgb
		style = style.Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
	}
	if element.BgCol != nil {
		rgb := element.BgCol.Rgb
		style = style.Background(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
	}

	return style
}

// rows splits the content at the buffer width
func (tb *TextBuffer) rows() [][]TextCell {
	width := max(tb.width, 1)

	var rows [][]TextCell
	for _, row := range tb.content {
		// Find the last non-empty cell in this row
		end := 0
		for x, cell := range row {
			if cell.Rune != 0 {
				end = x + 1
			}
		}

		if end == 0 {
			rows = append(rows, nil)
			continue
		}
		for start := 0; start < end; start += width {
			rows = append(rows, row[start:min(start+width, end)])
		}
	}
	return rows
}

// RowCount returns the number of screen rows the content takes when wrapped
func (tb *TextBuffer) RowCount() int {
	return len(tb.rows())
}

func (tb *TextBuffer) dumpSnapshot() error {
	unixMilli := time.Now().UnixMilli()

	appDir := filepath.Join(xdg.StateHome, "detect-columns")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return err
	}
	filePath := filepath.Join(appDir, fmt.Sprintf("snapshot-%d.txt", unixMilli))

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close() // nolint

	_, err = f.WriteString(tb.String())
	return err
}

// WriteToScreen draws height rows of wrapped content, starting at row offset
func (tb *TextBuffer) WriteToScreen(screen tcell.Screen, offset, height int) {
	if tb.width <= 0 {
		return
	}

	if IsDebugMode() {
		tb.dumpSnapshot() // nolint
	}

	rows := tb.rows()
	for screenY := 0; screenY < height && offset+screenY < len(rows); screenY++ {
		if offset+screenY < 0 {
			continue
		}
		for screenX, cell := range rows[offset+screenY] {
			if cell.Rune != 0 && cell.Rune != ' ' {
				screen.SetContent(screenX, screenY, cell.Rune, nil, cell.Style)
			}
		}
	}
}
