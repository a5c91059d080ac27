package hocr

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Properties holds the fields of an hOCR title attribute such as
// "bbox 10 20 300 45; baseline 0.003 -7; x_size 31".
// Known fields are typed; anything else is kept as raw strings in Extra.
type Properties struct {
	BBox        *BBox
	Baseline    []int
	PageNo      *int
	Image       string
	File        string
	XSize       *float64
	XDescenders *float64
	XAscenders  *float64
	Extra       map[string][]string

	keys []string // field names in title order
}

// Pair is a single field formatted for display
type Pair struct {
	Key   string
	Value string
}

type coercion func(p *Properties, values []string) error

// coercions maps a field name to the function storing its typed value.
// Fields without an entry end up in Properties.Extra.
var coercions = map[string]coercion{
	"bbox":         coerceBBox,
	"baseline":     coerceBaseline,
	"ppageno":      coercePageNo,
	"image":        coerceString(func(p *Properties) *string { return &p.Image }),
	"file":         coerceString(func(p *Properties) *string { return &p.File }),
	"x_size":       coerceFloat(func(p *Properties) **float64 { return &p.XSize }),
	"x_descenders": coerceFloat(func(p *Properties) **float64 { return &p.XDescenders }),
	"x_ascenders":  coerceFloat(func(p *Properties) **float64 { return &p.XAscenders }),
}

// ParseTitle parses a semicolon separated title attribute.
// Segments are trimmed and split on whitespace; the first token names the
// field and the remaining tokens are its values. Empty segments are skipped.
// A value that cannot be coerced to its field's type yields a
// *MalformedInputError with Page and Line set to -1.
func ParseTitle(title string) (Properties, error) {
	var props Properties

	for _, segment := range strings.Split(title, ";") {
		fields := strings.Fields(segment)
		if len(fields) == 0 {
			continue
		}

		key, values := fields[0], fields[1:]
		props.keys = append(props.keys, key)

		coerce, known := coercions[key]
		if !known {
			if props.Extra == nil {
				props.Extra = make(map[string][]string)
			}
			props.Extra[key] = values
			continue
		}

		if err := coerce(&props, values); err != nil {
			var malformed *MalformedInputError
			if errors.As(err, &malformed) {
				malformed.Field = key
				return props, malformed
			}
			return props, &MalformedInputError{Page: -1, Line: -1, Field: key, Value: strings.Join(values, " "), Err: err}
		}
	}

	return props, nil
}

// Has reports whether the title contained the named field
func (p Properties) Has(key string) bool {
	for _, k := range p.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Pairs returns every field in title order with its value formatted for display.
// Array values are joined by commas.
func (p Properties) Pairs() []Pair {
	values := p.values()
	pairs := make([]Pair, 0, len(p.keys))
	seen := make(map[string]bool, len(p.keys))

	for _, key := range p.keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		value, ok := values[key]
		if !ok {
			continue
		}

		var formatted string
		switch v := value.(type) {
		case []int:
			formatted = joinInts(v, ",")
		case []string:
			formatted = strings.Join(v, ",")
		case [4]int:
			formatted = joinInts(v[:], ",")
		default:
			formatted = fmt.Sprint(v)
		}
		pairs = append(pairs, Pair{Key: key, Value: formatted})
	}

	return pairs
}

// MarshalJSON encodes the fields as an object keyed by field name
func (p Properties) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.values())
}

func (p Properties) values() map[string]any {
	values := make(map[string]any, len(p.keys))

	for key, extra := range p.Extra {
		if len(extra) == 1 {
			values[key] = extra[0]
		} else {
			values[key] = extra
		}
	}
	if p.BBox != nil {
		values["bbox"] = p.BBox.Array()
	}
	if p.Baseline != nil {
		values["baseline"] = p.Baseline
	}
	if p.PageNo != nil {
		values["ppageno"] = *p.PageNo
	}
	if p.Has("image") {
		values["image"] = p.Image
	}
	if p.Has("file") {
		values["file"] = p.File
	}
	if p.XSize != nil {
		values["x_size"] = *p.XSize
	}
	if p.XDescenders != nil {
		values["x_descenders"] = *p.XDescenders
	}
	if p.XAscenders != nil {
		values["x_ascenders"] = *p.XAscenders
	}

	return values
}

func coerceBBox(p *Properties, values []string) error {
	ints, err := parseInts(values)
	if err != nil {
		return err
	}
	if len(ints) != 4 {
		return &MalformedInputError{
			Page:  -1,
			Line:  -1,
			Value: strings.Join(values, " "),
			Err:   fmt.Errorf("expected 4 coordinates, got %d", len(ints)),
		}
	}
	p.BBox = &BBox{X: ints[0], Y: ints[1], X2: ints[2], Y2: ints[3]}
	return nil
}

func coerceBaseline(p *Properties, values []string) error {
	ints, err := parseInts(values)
	if err != nil {
		return err
	}
	p.Baseline = ints
	return nil
}

func coercePageNo(p *Properties, values []string) error {
	if len(values) == 0 {
		return &MalformedInputError{Page: -1, Line: -1, Err: ErrMissingField}
	}
	n, err := parseInt(values[0])
	if err != nil {
		return err
	}
	p.PageNo = &n
	return nil
}

func coerceString(field func(p *Properties) *string) coercion {
	return func(p *Properties, values []string) error {
		*field(p) = stripQuotes(strings.Join(values, " "))
		return nil
	}
}

func coerceFloat(field func(p *Properties) **float64) coercion {
	return func(p *Properties, values []string) error {
		if len(values) == 0 {
			return &MalformedInputError{Page: -1, Line: -1, Err: ErrMissingField}
		}
		f, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			return &MalformedInputError{Page: -1, Line: -1, Value: values[0], Err: err}
		}
		*field(p) = &f
		return nil
	}
}

// leadingInt matches the integer prefix of a number such as "0.003" or "-7"
var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// parseInt reads the integer prefix of s, so that a fractional baseline
// slope like "0.003" becomes 0
func parseInt(s string) (int, error) {
	prefix := leadingInt.FindString(s)
	if prefix == "" {
		return 0, &MalformedInputError{Page: -1, Line: -1, Value: s, Err: errors.New("not a number")}
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, &MalformedInputError{Page: -1, Line: -1, Value: s, Err: err}
	}
	return n, nil
}

func parseInts(values []string) ([]int, error) {
	ints := make([]int, len(values))
	for i, v := range values {
		n, err := parseInt(v)
		if err != nil {
			return nil, err
		}
		ints[i] = n
	}
	return ints, nil
}

func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

func joinInts(ints []int, sep string) string {
	parts := make([]string, len(ints))
	for i, n := range ints {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
