package internal

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/nypl-spacetime/hocr-detect-columns/pkg/clipboard"
	"github.com/nypl-spacetime/hocr-detect-columns/pkg/render"
)

// ErrNotTerminal is returned when the viewer is started without a terminal
var ErrNotTerminal = errors.New("the viewer needs an interactive terminal")

// Copier receives the lines copied from the viewer
type Copier interface {
	Copy(text string) error
}

// Viewer shows the text report of one page at a time in the terminal
type Viewer struct {
	pages    []viewerPage
	renderer *render.TextRenderer
	lines    render.LineOptions
	copier   Copier
	page     int
	scroll   int
	message  string
	screen   tcell.Screen
	buffer   *TextBuffer
}

type viewerPage struct {
	source string
	page   render.AnnotatedPage
}

// NewViewer creates a viewer over the pages of all documents, in order.
// Lines copied with y are filtered by opts.Lines.
func NewViewer(docs []render.Document, opts render.Options) *Viewer {
	var pages []viewerPage
	for _, doc := range docs {
		for _, page := range doc.Pages {
			pages = append(pages, viewerPage{source: doc.Source, page: page})
		}
	}

	return &Viewer{
		pages:    pages,
		renderer: render.NewTextRenderer(opts.Palette),
		lines:    opts.Lines,
		copier:   clipboard.New(),
	}
}

// Navigation methods
func (v *Viewer) PrevPage() {
	if v.page > 0 {
		v.page--
		v.scroll = 0
		v.load()
	}
}

func (v *Viewer) NextPage() {
	if v.page < len(v.pages)-1 {
		v.page++
		v.scroll = 0
		v.load()
	}
}

// CopyLines copies the complete lines of the current page
func (v *Viewer) CopyLines() {
	if len(v.pages) == 0 {
		return
	}

	lines := render.Lines(v.pages[v.page].page, v.lines)
	if err := v.copier.Copy(strings.Join(lines, "\n")); err != nil {
		slog.Error("failed to copy lines", "page", v.page, "error", err)
		v.message = "copy failed"
		return
	}
	v.message = fmt.Sprintf("copied %d lines", len(lines))
}

// ScrollBy moves the view by delta rows, staying within the page report
func (v *Viewer) ScrollBy(delta int) {
	_, height := v.screen.Size()
	maxScroll := max(v.buffer.RowCount()-v.bodyHeight(height), 0)
	v.scroll = min(max(v.scroll+delta, 0), maxScroll)
}

func (v *Viewer) bodyHeight(height int) int {
	// last row is the status bar
	return max(height-1, 0)
}

// load renders the current page report into the buffer
func (v *Viewer) load() {
	if len(v.pages) == 0 {
		v.buffer.Clear()
		return
	}

	// the report is drawn through tcell, so colors are needed even when
	// stdout would not get them
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	var report bytes.Buffer
	if err := v.renderer.RenderPage(&report, v.pages[v.page].page); err != nil {
		slog.Error("failed to render page", "page", v.page, "error", err)
	}
	v.buffer.SetANSI(report.String())
}

// draw displays the current page and the status bar
func (v *Viewer) draw() {
	v.screen.Clear()

	width, height := v.screen.Size()
	v.buffer.Resize(width, height)
	v.buffer.WriteToScreen(v.screen, v.scroll, v.bodyHeight(height))

	source := ""
	if len(v.pages) > 0 {
		source = v.pages[v.page].source
	}
	status := fmt.Sprintf(" %s | page %d/%d | ←/→ page  ↑/↓ scroll  y copy lines  q quit", source, v.page+1, len(v.pages))
	if v.message != "" {
		status += " | " + v.message
	}
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, height-1, ' ', nil, style)
	}
	drawText(v.screen, 0, height-1, width, status, style)

	v.screen.Show()
}

// drawText writes text on row y, cut off at width
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w <= 0 {
			w = 1
		}
		if x+w > width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
}

// listen handles user input until the user quits
func (v *Viewer) listen() {
	renderStart := time.Now()
	v.draw()
	slog.Info("first render completed", "duration_ms", time.Since(renderStart).Milliseconds())

	for {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if v.handleKeyEvent(ev) {
				return
			}
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventError:
			return
		case nil:
			// screen finalized
			return
		}

		v.draw()
	}
}

// handleKeyEvent processes a key event and reports whether to quit
func (v *Viewer) handleKeyEvent(ev *tcell.EventKey) bool {
	v.message = ""
	_, height := v.screen.Size()
	page := max(v.bodyHeight(height)-1, 1)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.PrevPage()
	case tcell.KeyRight:
		v.NextPage()
	case tcell.KeyUp:
		v.ScrollBy(-1)
	case tcell.KeyDown:
		v.ScrollBy(1)
	case tcell.KeyPgUp:
		v.ScrollBy(-page)
	case tcell.KeyPgDn:
		v.ScrollBy(page)
	case tcell.KeyHome:
		v.scroll = 0
	case tcell.KeyEnd:
		v.ScrollBy(v.buffer.RowCount())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'p':
			v.PrevPage()
		case 'n':
			v.NextPage()
		case 'k':
			v.ScrollBy(-1)
		case 'j':
			v.ScrollBy(1)
		case ' ':
			v.ScrollBy(page)
		case 'y':
			v.CopyLines()
		}
	}
	return false
}

// Run opens the terminal screen and shows the pages until the user quits
func (v *Viewer) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	v.present(screen)
	return nil
}

// present shows the pages on an initialized screen
func (v *Viewer) present(screen tcell.Screen) {
	v.screen = screen
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	width, height := screen.Size()
	v.buffer = NewTextBuffer(width, height)
	v.load()

	v.listen()
}
