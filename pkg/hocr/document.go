package hocr

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"
)

const pageClass = "ocr_page"

// lineClasses are the hOCR classes treated as text lines
var lineClasses = []string{
	"ocr_line",
	"ocrx_line",
	"ocr_header",
	"ocr_caption",
	"ocr_textfloat",
}

// ReadFile reads the hOCR document at path
func ReadFile(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening hOCR file: %w", err)
	}
	defer f.Close() // nolint: errcheck

	pages, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return pages, nil
}

// Read parses an hOCR document. The character set is taken from a byte
// order mark or the document's meta declaration and defaults to UTF-8.
// Lines without text are dropped; a line without a bbox is an error.
func Read(r io.Reader) ([]Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	doc, err := html.Parse(decode(data))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var pageNodes []*html.Node
	collect(doc, func(n *html.Node) bool { return hasClass(n, pageClass) }, &pageNodes)

	pages := make([]Page, 0, len(pageNodes))
	for number, node := range pageNodes {
		page, err := readPage(node, number)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, nil
}

func decode(data []byte) io.Reader {
	enc, name, certain := charset.DetermineEncoding(data, "text/html")
	// DetermineEncoding only inspects the first 1024 bytes before falling
	// back to windows-1252
	if !certain && name == "windows-1252" && utf8.Valid(data) {
		return bytes.NewReader(data)
	}
	return enc.NewDecoder().Reader(bytes.NewReader(data))
}

func readPage(node *html.Node, number int) (Page, error) {
	props, err := ParseTitle(attr(node, "title"))
	if err != nil {
		return Page{}, locate(err, number, -1)
	}

	var lineNodes []*html.Node
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		collect(c, isLine, &lineNodes)
	}

	page := Page{
		Number:     number,
		Properties: props,
		Lines:      make([]Line, 0, len(lineNodes)),
	}

	for _, lineNode := range lineNodes {
		text := lineText(lineNode)
		if text == "" {
			continue
		}

		lineProps, err := ParseTitle(attr(lineNode, "title"))
		if err != nil {
			return Page{}, locate(err, number, len(page.Lines))
		}
		if lineProps.BBox == nil {
			return Page{}, &MalformedInputError{
				Page:  number,
				Line:  len(page.Lines),
				Field: "bbox",
				Err:   ErrMissingField,
			}
		}

		page.Lines = append(page.Lines, Line{
			ID:         attr(lineNode, "id"),
			Properties: lineProps,
			Text:       text,
		})
	}

	return page, nil
}

// collect appends n, or the matching nodes below it, to found.
// It does not descend into a node once it matched.
func collect(n *html.Node, match func(*html.Node) bool, found *[]*html.Node) {
	if match(n) {
		*found = append(*found, n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, match, found)
	}
}

func isLine(n *html.Node) bool {
	for _, class := range lineClasses {
		if hasClass(n, class) {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// lineText returns the whitespace collapsed, NFC normalized text below n
func lineText(n *html.Node) string {
	var sb strings.Builder
	textContent(n, &sb)

	text := strings.Join(strings.Fields(sb.String()), " ")
	text = strings.ReplaceAll(text, `\&`, "&")
	return norm.NFC.String(text)
}

func textContent(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, sb)
	}
}
